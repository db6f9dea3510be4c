package estimate

// adjustment is applied once when any keyword in its group appears in a title.
type adjustment struct {
	keywords []string

	tempo            float64
	energy           float64
	valence          float64
	danceability     float64
	acousticness     float64
	instrumentalness float64
}

// keywordGroups are matched against whole title tokens; multi-word entries
// match as phrases.
var keywordGroups = []adjustment{ //nolint:gochecknoglobals // static lookup table
	{ // high energy
		keywords: []string{
			"energetic", "party", "dance", "pump", "hype", "wild", "rage", "fire",
			"power", "hard", "heavy", "workout", "anthem", "banger",
		},
		energy:       0.2,
		tempo:        20,
		danceability: 0.1,
	},
	{ // low energy
		keywords: []string{
			"calm", "chill", "acoustic", "peaceful", "quiet", "soft", "gentle", "relax",
			"sleep", "ambient", "slow", "serene", "tranquil", "meditation", "lullaby", "unplugged",
		},
		energy:           -0.25,
		tempo:            -20,
		acousticness:     0.25,
		instrumentalness: 0.1,
	},
	{ // happy
		keywords: []string{
			"happy", "joy", "celebrate", "fun", "smile", "sunshine", "bright", "cheerful",
			"upbeat", "feel good", "good vibes",
		},
		valence: 0.2,
	},
	{ // sad
		keywords: []string{
			"sad", "tears", "cry", "lonely", "broken", "hurt", "goodbye", "lost", "empty",
			"alone", "blue", "melancholy", "heartbreak",
		},
		valence:      -0.2,
		energy:       -0.1,
		acousticness: 0.1,
	},
	{ // focus / instrumental
		keywords: []string{
			"instrumental", "focus", "study", "piano", "lofi", "lo fi", "concentration",
			"classical", "interlude",
		},
		instrumentalness: 0.4,
	},
}
