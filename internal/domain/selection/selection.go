// Package selection turns ranked candidates into an ordered, diverse
// playlist.
package selection

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/moodmix/internal/domain/model"
)

// Defaults.
const (
	DefaultArtistCap     = 2
	DefaultTieTolerance  = 5.0
	DefaultJumpThreshold = 0.25
)

// Selector picks playlists from scored candidates. It holds only
// configuration and is safe for concurrent use.
type Selector struct {
	tieTolerance  float64
	jumpThreshold float64
	defaultCap    int
}

// New creates a Selector.
func New(opts ...Option) *Selector {
	s := &Selector{
		tieTolerance:  DefaultTieTolerance,
		jumpThreshold: DefaultJumpThreshold,
		defaultCap:    DefaultArtistCap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select chooses up to targetCount tracks honoring the artist cap, relaxing
// the cap one step at a time when the pool runs dry, then orders the result
// for a smooth energy flow. An artistCap of 0 means the default cap.
func (s *Selector) Select(scored []model.ScoredTrack, targetCount, artistCap int) (model.Playlist, error) {
	if targetCount < 0 {
		return model.Playlist{}, fmt.Errorf("%w: %d", model.ErrInvalidTargetCount, targetCount)
	}
	if artistCap < 0 {
		return model.Playlist{}, fmt.Errorf("%w: %d", model.ErrInvalidArtistCap, artistCap)
	}
	if artistCap == 0 {
		artistCap = s.defaultCap
	}

	pool := rank(scored)
	picked, effectiveCap := s.greedy(pool, targetCount, artistCap)

	tracks := make([]model.Track, len(picked))
	for i, st := range picked {
		tracks[i] = st.Track
	}
	tracks = Flow(tracks, s.jumpThreshold)

	return model.Playlist{
		Tracks:             tracks,
		TargetSize:         targetCount,
		Stats:              Stats(tracks),
		Relaxed:            effectiveCap > artistCap,
		EffectiveArtistCap: effectiveCap,
		Shortfall:          targetCount - len(tracks),
	}, nil
}

// rank copies scored, orders it by score, popularity and input index, and
// drops repeated IDs keeping the best ranked one.
func rank(scored []model.ScoredTrack) []model.ScoredTrack {
	pool := make([]model.ScoredTrack, len(scored))
	copy(pool, scored)
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Track.Popularity != b.Track.Popularity {
			return a.Track.Popularity > b.Track.Popularity
		}
		return a.Index < b.Index
	})

	seen := make(map[string]struct{}, len(pool))
	out := pool[:0]
	for _, st := range pool {
		if _, dup := seen[st.ID]; dup {
			continue
		}
		seen[st.ID] = struct{}{}
		out = append(out, st)
	}
	return out
}

// greedy walks the ranked pool. It returns the picks in selection order and
// the cap in force when it stopped.
func (s *Selector) greedy(pool []model.ScoredTrack, target, limit int) ([]model.ScoredTrack, int) {
	picked := make([]model.ScoredTrack, 0, min(target, len(pool)))
	used := make([]bool, len(pool))
	counts := make(map[string]int)
	var tempos []float64

	for len(picked) < target && len(picked) < len(pool) {
		i := s.pick(pool, used, counts, limit, tempos)
		if i < 0 {
			limit++
			continue
		}
		used[i] = true
		picked = append(picked, pool[i])
		for _, a := range artistKeys(pool[i].Track) {
			counts[a]++
		}
		tempos = append(tempos, pool[i].Track.FeaturesOrNeutral().Tempo)
	}
	return picked, limit
}

// pick returns the index of the next track or -1 when nothing is eligible
// under limit.
func (s *Selector) pick(pool []model.ScoredTrack, used []bool, counts map[string]int, limit int, tempos []float64) int {
	best := -1
	for i := range pool {
		if !used[i] && eligible(pool[i].Track, counts, limit) {
			best = i
			break
		}
	}
	if best < 0 || len(tempos) == 0 {
		return best
	}

	floor := pool[best].Score - s.tieTolerance
	choice, spread := best, tempoSpread(pool[best].Track, tempos)
	for i := best + 1; i < len(pool) && pool[i].Score >= floor; i++ {
		if used[i] || !eligible(pool[i].Track, counts, limit) {
			continue
		}
		if d := tempoSpread(pool[i].Track, tempos); d > spread {
			choice, spread = i, d
		}
	}
	return choice
}

// eligible reports whether every credited artist is below limit.
func eligible(t model.Track, counts map[string]int, limit int) bool {
	for _, a := range artistKeys(t) {
		if counts[a] >= limit {
			return false
		}
	}
	return true
}

// tempoSpread is the distance from t's tempo to the nearest selected tempo.
func tempoSpread(t model.Track, tempos []float64) float64 {
	tempo := t.FeaturesOrNeutral().Tempo
	nearest := math.Inf(1)
	for _, s := range tempos {
		nearest = math.Min(nearest, math.Abs(tempo-s))
	}
	return nearest
}

// artistKeys returns the distinct, lower-cased credited artists of t.
func artistKeys(t model.Track) []string {
	keys := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		k := strings.ToLower(strings.TrimSpace(a))
		if k == "" {
			continue
		}
		dup := false
		for _, seen := range keys {
			if seen == k {
				dup = true
				break
			}
		}
		if !dup {
			keys = append(keys, k)
		}
	}
	return keys
}
