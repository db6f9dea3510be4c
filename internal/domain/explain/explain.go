// Package explain writes a short plain-language rationale for a playlist.
package explain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/internal/domain/scoring"
)

// Profile is the aggregate a playlist explanation is built from.
type Profile struct {
	Count         int
	UniqueArtists int
	AvgTempo      float64
	AvgEnergy     float64
	AvgValence    float64
}

// Explainer turns playlists into two or three sentence explanations.
type Explainer struct{}

// New returns an Explainer.
func New() *Explainer { return &Explainer{} }

// Explain never returns an empty string.
func (Explainer) Explain(p model.Playlist, mood model.MoodProfile) string {
	name := mood.Category()
	if name == "" {
		name = "current"
	}
	if len(p.Tracks) == 0 {
		return fill(emptyTemplate, map[string]string{"{name}": name}) + shortfallNote(p)
	}

	prof := Summarize(p)
	key, ok := scoring.Canonical(name)
	tmpl, found := templates[key]
	if !ok || !found {
		tmpl = templates[scoring.DefaultMood]
	}

	text := fill(tmpl, map[string]string{
		"{count}":   strconv.Itoa(prof.Count),
		"{energy}":  EnergyLabel(prof.AvgEnergy),
		"{tempo}":   TempoLabel(prof.AvgTempo),
		"{mood}":    ValenceLabel(prof.AvgValence),
		"{artists}": artistPhrase(prof.UniqueArtists),
		"{bpm}":     strconv.Itoa(int(math.Round(prof.AvgTempo))),
		"{name}":    name,
	})
	if note := relaxationNote(p); note != "" {
		return text + note
	}
	return text + shortfallNote(p)
}

// Summarize averages the playlist's features. Tracks without features count
// as neutral.
func Summarize(p model.Playlist) Profile {
	prof := Profile{Count: len(p.Tracks), UniqueArtists: p.Stats.UniqueArtists}
	if prof.Count == 0 {
		return prof
	}
	for _, t := range p.Tracks {
		f := t.FeaturesOrNeutral()
		prof.AvgTempo += f.Tempo
		prof.AvgEnergy += f.Energy
		prof.AvgValence += f.Valence
	}
	n := float64(prof.Count)
	prof.AvgTempo /= n
	prof.AvgEnergy /= n
	prof.AvgValence /= n
	if prof.UniqueArtists == 0 {
		seen := map[string]struct{}{}
		for _, t := range p.Tracks {
			for _, a := range t.Artists {
				seen[strings.ToLower(a)] = struct{}{}
			}
		}
		prof.UniqueArtists = len(seen)
	}
	return prof
}

// EnergyLabel describes an average energy.
func EnergyLabel(e float64) string {
	switch {
	case e > 0.7:
		return "high-energy"
	case e > 0.4:
		return "moderate-energy"
	default:
		return "low-energy"
	}
}

// TempoLabel describes an average tempo.
func TempoLabel(bpm float64) string {
	switch {
	case bpm > 120:
		return "upbeat"
	case bpm > 90:
		return "mid-tempo"
	default:
		return "slow"
	}
}

// ValenceLabel describes an average valence.
func ValenceLabel(v float64) string {
	switch {
	case v > 0.6:
		return "uplifting"
	case v > 0.4:
		return "balanced"
	default:
		return "reflective"
	}
}

func artistPhrase(n int) string {
	if n == 1 {
		return "a single artist"
	}
	return fmt.Sprintf("%d different artists", n)
}

func relaxationNote(p model.Playlist) string {
	if !p.Relaxed {
		return ""
	}
	return fmt.Sprintf(" The pool was short on variety, so up to %d tracks per artist were allowed.", p.EffectiveArtistCap)
}

func shortfallNote(p model.Playlist) string {
	if p.Shortfall <= 0 {
		return ""
	}
	return fmt.Sprintf(" Only %d of the %d requested tracks were available.", len(p.Tracks), p.TargetSize)
}

func fill(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
