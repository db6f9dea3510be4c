package explain

// Template placeholders, filled by fill:
//
//	{count} {energy} {tempo} {mood} {artists} {bpm} {name}
var templates = map[string]string{ //nolint:gochecknoglobals // static lookup table
	"happy": "I've curated {count} {energy} tracks with {tempo} rhythms to match your happy mood. " +
		"This playlist features {artists} with {mood} vibes, averaging {bpm} BPM to keep your positive energy flowing.",
	"excited": "This {count}-track playlist brings the excitement with {energy}, {tempo} beats. " +
		"Featuring {artists}, these {mood} tracks will fuel your enthusiasm and keep the energy high.",
	"energetic": "I've assembled {count} {energy} tracks for your energetic mood. " +
		"With {artists} and an average tempo of {bpm} BPM, this playlist will power you through any activity.",
	"calm": "This {count}-track collection offers {energy}, {tempo} music to help you settle. " +
		"Featuring {artists}, these {mood} tracks average {bpm} BPM for a peaceful atmosphere.",
	"relaxed": "I've selected {count} {energy} tracks from {artists} to ease you into relaxation. " +
		"These {tempo}, {mood} songs keep a soothing flow for unwinding.",
	"focused": "This {count}-track playlist supports concentration with {energy}, {tempo} music. " +
		"Featuring {artists}, these {mood} tracks hold a steady {bpm} BPM to help you stay in the zone.",
	"sad": "I've curated {count} {energy} tracks to sit with how you feel right now. " +
		"With {artists}, these {mood} songs offer comfort while you work through it.",
	"melancholy": "This {count}-track collection leans into melancholy with {energy}, {tempo} selections. " +
		"Featuring {artists}, these {mood} tracks settle around a reflective {bpm} BPM.",
	"angry": "I've assembled {count} {energy} tracks to channel your intensity. " +
		"These {tempo} songs from {artists} deliver {mood} force, averaging {bpm} BPM to match the heat.",
	"romantic": "I've gathered {count} {energy}, {tempo} tracks to set a romantic mood. " +
		"Featuring {artists}, these {mood} songs move at an unhurried {bpm} BPM.",
	"party": "This {count}-track party set keeps things {energy} with {tempo} grooves. " +
		"With {artists} averaging {bpm} BPM, the floor should stay full.",
	"chill": "I've lined up {count} {energy}, {tempo} tracks for a chill stretch. " +
		"Featuring {artists}, these {mood} songs drift along at around {bpm} BPM.",
	"default": "I've curated {count} tracks featuring {artists} to match your {name} mood. " +
		"These {energy}, {tempo} selections create a {mood} atmosphere for where you are right now.",
}

const emptyTemplate = "Nothing in the candidate pool matched your {name} mood, so this playlist is empty."
