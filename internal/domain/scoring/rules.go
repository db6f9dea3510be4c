package scoring

import "github.com/okian/moodmix/internal/domain/model"

// Feature names an audio feature a rule can target.
type Feature string

const (
	Tempo            Feature = "tempo"
	Energy           Feature = "energy"
	Valence          Feature = "valence"
	Danceability     Feature = "danceability"
	Acousticness     Feature = "acousticness"
	Instrumentalness Feature = "instrumentalness"
)

// Value reads the feature from f.
func (x Feature) Value(f model.AudioFeatures) float64 {
	switch x {
	case Tempo:
		return f.Tempo
	case Energy:
		return f.Energy
	case Valence:
		return f.Valence
	case Danceability:
		return f.Danceability
	case Acousticness:
		return f.Acousticness
	case Instrumentalness:
		return f.Instrumentalness
	default:
		return 0
	}
}

// scale is the distance outside a band at which closeness reaches zero.
func (x Feature) scale() float64 {
	if x == Tempo {
		return tempoScale
	}
	return ratioScale
}

// Target is an inclusive band a feature should fall in.
type Target struct {
	Feature Feature
	Min     float64
	Max     float64
}

// Rule lists the targets for one mood category.
type Rule struct {
	Mood    string
	Targets []Target
}

// DefaultMood names the rule used for unrecognized categories.
const DefaultMood = "default"

// Rules is the mood rule table keyed by canonical category.
var Rules = map[string]Rule{ //nolint:gochecknoglobals // static lookup table
	"happy": {Mood: "happy", Targets: []Target{
		{Energy, 0.6, 0.9}, {Valence, 0.7, 1}, {Tempo, 110, 140},
	}},
	"excited": {Mood: "excited", Targets: []Target{
		{Energy, 0.75, 1}, {Valence, 0.6, 1}, {Tempo, 120, 150},
	}},
	"energetic": {Mood: "energetic", Targets: []Target{
		{Energy, 0.7, 1}, {Tempo, 130, 180}, {Danceability, 0.6, 1},
	}},
	"calm": {Mood: "calm", Targets: []Target{
		{Energy, 0, 0.5}, {Tempo, 60, 100}, {Acousticness, 0.4, 1},
	}},
	"relaxed": {Mood: "relaxed", Targets: []Target{
		{Energy, 0, 0.5}, {Valence, 0.4, 0.8}, {Tempo, 60, 105},
	}},
	"focused": {Mood: "focused", Targets: []Target{
		{Energy, 0.3, 0.6}, {Instrumentalness, 0.3, 1}, {Tempo, 80, 120},
	}},
	"sad": {Mood: "sad", Targets: []Target{
		{Valence, 0, 0.35}, {Energy, 0, 0.45}, {Tempo, 55, 95},
	}},
	"melancholy": {Mood: "melancholy", Targets: []Target{
		{Valence, 0.1, 0.4}, {Energy, 0.1, 0.5}, {Acousticness, 0.3, 1},
	}},
	"angry": {Mood: "angry", Targets: []Target{
		{Energy, 0.8, 1}, {Valence, 0, 0.4}, {Tempo, 130, 190},
	}},
	"romantic": {Mood: "romantic", Targets: []Target{
		{Valence, 0.5, 0.85}, {Energy, 0.3, 0.6}, {Tempo, 70, 110},
	}},
	"party": {Mood: "party", Targets: []Target{
		{Danceability, 0.7, 1}, {Energy, 0.7, 1}, {Tempo, 115, 135},
	}},
	"chill": {Mood: "chill", Targets: []Target{
		{Energy, 0.2, 0.55}, {Tempo, 70, 105}, {Valence, 0.4, 0.75},
	}},
	DefaultMood: {Mood: DefaultMood, Targets: []Target{
		{Energy, 0.35, 0.65}, {Valence, 0.35, 0.65}, {Tempo, 90, 125},
	}},
}

// Aliases maps alternate mood words onto rule categories.
var Aliases = map[string]string{ //nolint:gochecknoglobals // static lookup table
	"joyful":        "happy",
	"cheerful":      "happy",
	"peaceful":      "calm",
	"relaxing":      "relaxed",
	"melancholic":   "melancholy",
	"motivated":     "energetic",
	"frustrated":    "angry",
	"concentrating": "focused",
	"neutral":       DefaultMood,
}

// Canonical resolves aliases and reports whether category names a rule.
func Canonical(category string) (string, bool) {
	if alias, ok := Aliases[category]; ok {
		category = alias
	}
	if _, ok := Rules[category]; ok {
		return category, true
	}
	return category, false
}

// RuleFor returns the rule for category, falling back to the default rule.
func RuleFor(category string) Rule {
	if c, ok := Canonical(category); ok {
		return Rules[c]
	}
	return Rules[DefaultMood]
}
