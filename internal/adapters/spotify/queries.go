package spotify

import (
	"strings"

	"github.com/okian/moodmix/internal/domain/model"
)

const maxQueries = 5

var moodQueries = map[string][]string{ //nolint:gochecknoglobals // static lookup table
	"happy":         {"feel good", "upbeat", "cheerful", "joyful"},
	"energetic":     {"workout", "pump up", "high energy", "motivational"},
	"excited":       {"party", "celebration", "upbeat", "festive"},
	"euphoric":      {"euphoric", "blissful", "ecstatic", "uplifting"},
	"calm":          {"peaceful", "relaxing", "chill", "ambient"},
	"peaceful":      {"meditation", "zen", "tranquil", "serene"},
	"content":       {"easy listening", "mellow", "comfortable", "smooth"},
	"relaxed":       {"lounge", "laid back", "easy", "soft"},
	"angry":         {"aggressive", "intense", "metal", "hard rock"},
	"anxious":       {"tense", "suspenseful", "dramatic", "intense"},
	"frustrated":    {"intense", "aggressive", "powerful", "loud"},
	"sad":           {"melancholy", "emotional", "heartbreak", "somber"},
	"melancholy":    {"sad songs", "emotional", "reflective", "moody"},
	"melancholic":   {"sad songs", "emotional", "reflective", "moody"},
	"depressed":     {"downtempo", "melancholic", "blue", "somber"},
	"lonely":        {"emotional", "introspective", "longing", "heartfelt"},
	"nostalgic":     {"throwback", "classic", "retro", "memories"},
	"romantic":      {"love songs", "romantic", "intimate", "passionate"},
	"contemplative": {"introspective", "thoughtful", "reflective", "deep"},
	"focused":       {"concentration", "study", "focus", "instrumental"},
	"dreamy":        {"ethereal", "atmospheric", "dreamy", "ambient"},
	"party":         {"party", "dance", "club", "banger"},
	"chill":         {"chill", "lofi", "laid back", "mellow"},
}

var contextStyles = map[string][]string{ //nolint:gochecknoglobals // static lookup table
	"workout":    {"workout", "gym", "fitness", "running"},
	"gym":        {"workout", "fitness", "gym", "training"},
	"running":    {"running", "cardio", "jogging", "exercise"},
	"studying":   {"study", "concentration", "focus", "instrumental"},
	"work":       {"focus", "productivity", "concentration", "background"},
	"party":      {"party", "dance", "club", "upbeat"},
	"sleep":      {"sleep", "lullaby", "calm", "peaceful"},
	"relaxing":   {"chill", "relaxing", "calm", "easy listening"},
	"meditation": {"meditation", "zen", "mindfulness", "ambient"},
	"morning":    {"morning", "wake up", "energizing", "fresh"},
	"evening":    {"evening", "sunset", "mellow", "relaxed"},
	"night":      {"night", "late night", "chill", "ambient"},
	"driving":    {"road trip", "driving", "cruising", "highway"},
	"cooking":    {"cooking", "jazz", "easy listening", "background"},
	"cleaning":   {"cleaning", "upbeat", "energizing", "motivation"},
}

// Queries builds up to five distinct search strings for a mood: the mood's
// own queries, then the context's styles, then energy words, then the first
// two tags.
func Queries(mood model.MoodProfile) []string {
	var qs []string
	qs = append(qs, moodQueries[mood.Category()]...)
	qs = append(qs, contextStyles[strings.ToLower(strings.TrimSpace(mood.Context))]...)

	switch {
	case mood.EnergyLevel >= 8:
		qs = append(qs, "high energy", "intense", "powerful")
	case mood.EnergyLevel >= 6:
		qs = append(qs, "upbeat", "energetic", "lively")
	case mood.EnergyLevel <= 3:
		qs = append(qs, "slow", "calm", "peaceful")
	}

	for i, tag := range mood.Tags {
		if i == 2 {
			break
		}
		qs = append(qs, strings.ToLower(strings.TrimSpace(tag)))
	}

	seen := make(map[string]struct{}, len(qs))
	out := make([]string, 0, maxQueries)
	for _, q := range qs {
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
		if len(out) == maxQueries {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, mood.Category())
	}
	return out
}
