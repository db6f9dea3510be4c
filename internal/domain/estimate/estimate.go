// Package estimate derives plausible audio features from track metadata when
// measured features are unavailable.
package estimate

import (
	"math"
	"math/rand"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/moodmix/internal/domain/model"
)

const (
	medianDuration  = 3.5 // minutes
	longDuration    = 5.0 // minutes
	durationSlope   = 0.06
	maxDurationDrop = -0.15
	maxDurationLift = 0.1

	loudnessFloor = -20.0
	loudnessSpan  = 8.0

	ratioJitter  = 0.10
	sparseJitter = 0.05
)

// Source produces features for a single track. *Estimator and caching
// wrappers implement it.
type Source interface {
	Estimate(t model.Track) model.AudioFeatures
}

// Estimator is a pure, deterministic heuristic feature estimator. The zero
// value is ready to use.
type Estimator struct{}

// New returns an Estimator.
func New() *Estimator { return &Estimator{} }

// Estimate returns features for t tagged as estimated. The same track always
// yields the same features.
func (Estimator) Estimate(t model.Track) model.AudioFeatures {
	f := model.NeutralFeatures()
	var loudnessOffset float64

	text := normalizeTitle(t.Title)
	for _, g := range keywordGroups {
		if !matchesAny(text, g.keywords) {
			continue
		}
		f.Tempo += g.tempo
		f.Energy += g.energy
		f.Valence += g.valence
		f.Danceability += g.danceability
		f.Acousticness += g.acousticness
		f.Instrumentalness += g.instrumentalness
	}

	if t.Popularity > 0 {
		p := float64(min(t.Popularity, 100))/100 - 0.5
		f.Energy += p * 0.3
		f.Danceability += p * 0.2
	}

	if t.Duration > 0 {
		minutes := t.Duration.Minutes()
		f.Energy += math.Max(maxDurationDrop, math.Min(maxDurationLift, (medianDuration-minutes)*durationSlope))
		if minutes > longDuration {
			f.Acousticness += 0.1
			f.Instrumentalness += 0.1
		}
	}

	if t.Explicit {
		f.Energy += 0.05
		f.Danceability += 0.05
		f.Speechiness += 0.05
		loudnessOffset++
	}

	f.Loudness = -8 + (clamp01(f.Energy)-0.5)*loudnessSpan + loudnessOffset

	r := rand.New(rand.NewSource(int64(seed(t)))) //nolint:gosec // deterministic per-track jitter
	f.Tempo += jitter(r, ratioJitter, model.MaxTempo-model.MinTempo)
	f.Energy += jitter(r, ratioJitter, 1)
	f.Valence += jitter(r, ratioJitter, 1)
	f.Danceability += jitter(r, ratioJitter, 1)
	f.Acousticness += jitter(r, ratioJitter, 1)
	f.Instrumentalness += jitter(r, sparseJitter, 1)
	f.Speechiness += jitter(r, sparseJitter, 1)
	f.Loudness += jitter(r, ratioJitter, -loudnessFloor)

	f = f.Clamp()
	f.Loudness = math.Max(loudnessFloor, f.Loudness)

	f.Tempo = round(f.Tempo, 1)
	f.Loudness = round(f.Loudness, 1)
	f.Energy = round(f.Energy, 3)
	f.Valence = round(f.Valence, 3)
	f.Danceability = round(f.Danceability, 3)
	f.Acousticness = round(f.Acousticness, 3)
	f.Instrumentalness = round(f.Instrumentalness, 3)
	f.Speechiness = round(f.Speechiness, 3)
	f.Source = model.SourceEstimated
	return f
}

// Missing returns a copy of tracks where each track without features carries
// features from src, plus how many were estimated. Attached features are
// never replaced.
func Missing(src Source, tracks []model.Track) ([]model.Track, int) {
	out := make([]model.Track, len(tracks))
	estimated := 0
	for i, t := range tracks {
		if t.HasFeatures() {
			out[i] = t
			continue
		}
		out[i] = t.WithFeatures(src.Estimate(t))
		estimated++
	}
	return out, estimated
}

// seed hashes the identity of a track. Tracks with neither artists nor title
// fall back to their ID.
func seed(t model.Track) uint64 {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = strings.ToLower(strings.TrimSpace(a))
	}
	key := strings.Join(artists, "|") + "\x00" + strings.ToLower(strings.TrimSpace(t.Title))
	if key == "\x00" {
		key = t.ID
	}
	return xxhash.Sum64String(key)
}

// normalizeTitle lowercases the title and collapses it to space separated
// tokens with a leading and trailing space.
func normalizeTitle(title string) string {
	tokens := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(tokens) == 0 {
		return ""
	}
	return " " + strings.Join(tokens, " ") + " "
}

func matchesAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(text, " "+k+" ") {
			return true
		}
	}
	return false
}

// jitter returns a value in [-pct*span, +pct*span).
func jitter(r *rand.Rand, pct, span float64) float64 {
	return (r.Float64()*2 - 1) * pct * span
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
