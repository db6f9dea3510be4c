// Package scoring ranks candidate tracks against a mood profile and the
// listener's history.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/moodmix/internal/domain/model"
)

// Subscore weights. They sum to 1.
const (
	AudioWeight      = 0.40
	PreferenceWeight = 0.30
	PopularityWeight = 0.20
	NoveltyWeight    = 0.10
)

const (
	maxScoreValue = 100
	neutralScore  = 50

	ratioScale = 0.5
	tempoScale = 60.0

	tightIntensity = 8
	looseIntensity = 3
	tightFactor    = 0.8
	looseFactor    = 1.2

	favoriteArtistBonus = 30
	genreBonus          = 20
	energyBonus         = 10
	discoveryBonus      = 20
	noveltyPerPoint     = 0.3
)

// Scorer computes relevance scores over the built-in rule table. It is safe
// for concurrent use.
type Scorer struct{}

// New creates a Scorer.
func New() *Scorer { return &Scorer{} }

// Score returns one ScoredTrack per input track, in input order.
func (s *Scorer) Score(tracks []model.Track, mood model.MoodProfile, user *model.UserContext) ([]model.ScoredTrack, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("score: %w", model.ErrNoCandidates)
	}
	rule := RuleFor(mood.Category())
	factor := intensityFactor(mood.EmotionalIntensity)
	prefs := newPreferences(user)

	out := make([]model.ScoredTrack, len(tracks))
	for i, t := range tracks {
		st := model.ScoredTrack{
			Track:      t,
			Audio:      audioScore(t, rule, factor),
			Preference: prefs.score(t),
			Popularity: clampScore(float64(t.Popularity)),
			Novelty:    prefs.novelty(t),
			Index:      i,
		}
		st.Score = Combine(st.Audio, st.Preference, st.Popularity, st.Novelty)
		out[i] = st
	}
	return out, nil
}

// Combine weights the subscores into a final 0-100 score.
func Combine(audio, preference, popularity, novelty float64) float64 {
	return clampScore(audio*AudioWeight + preference*PreferenceWeight +
		popularity*PopularityWeight + novelty*NoveltyWeight)
}

func intensityFactor(intensity int) float64 {
	switch {
	case intensity >= tightIntensity:
		return tightFactor
	case intensity > 0 && intensity <= looseIntensity:
		return looseFactor
	default:
		return 1
	}
}

// audioScore averages per-target closeness. Tracks without features score
// neutral.
func audioScore(t model.Track, rule Rule, factor float64) float64 {
	if !t.HasFeatures() || len(rule.Targets) == 0 {
		return neutralScore
	}
	var sum float64
	for _, target := range rule.Targets {
		sum += closeness(target.Feature.Value(*t.Features), target, factor)
	}
	return clampScore(sum / float64(len(rule.Targets)))
}

// closeness is 100 inside the band and falls linearly to 0 at one scale
// outside it.
func closeness(v float64, target Target, factor float64) float64 {
	var dist float64
	switch {
	case v < target.Min:
		dist = target.Min - v
	case v > target.Max:
		dist = v - target.Max
	}
	scale := target.Feature.scale() * factor
	return maxScoreValue * (1 - math.Min(dist/scale, 1))
}

// preferences holds lower-cased lookup sets built once per Score call.
type preferences struct {
	user      *model.UserContext
	favorites map[string]struct{}
	genres    map[string]struct{}
	recent    map[string]struct{}
}

func newPreferences(u *model.UserContext) preferences {
	p := preferences{user: u}
	if u == nil {
		return p
	}
	p.favorites = lowerSet(u.FavoriteArtists)
	p.genres = lowerSet(u.FavoriteGenres)
	p.recent = lowerSet(u.RecentArtists)
	return p
}

func (p preferences) score(t model.Track) float64 {
	if p.user == nil {
		return neutralScore
	}
	score := float64(neutralScore)
	if anyIn(t.Artists, p.favorites) {
		score += favoriteArtistBonus
	}
	if anyIn(t.Genres, p.genres) {
		score += genreBonus
	}
	if p.user.AverageEnergy != nil && t.HasFeatures() {
		d := math.Abs(t.Features.Energy - *p.user.AverageEnergy)
		score += energyBonus * (1 - math.Min(d/ratioScale, 1))
	}
	return clampScore(score)
}

func (p preferences) novelty(t model.Track) float64 {
	score := neutralScore + float64(maxScoreValue-clampPopularity(t.Popularity))*noveltyPerPoint
	if p.user.HasRecentArtists() && len(t.Artists) > 0 && !anyIn(t.Artists, p.recent) {
		score += discoveryBonus
	}
	return clampScore(score)
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func anyIn(values []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := set[strings.ToLower(strings.TrimSpace(v))]; ok {
			return true
		}
	}
	return false
}

func clampPopularity(p int) int {
	return max(0, min(maxScoreValue, p))
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(maxScoreValue, v))
}
