package model

import (
	"fmt"
	"math"
	"time"
)

// FeatureSource records where audio features came from. Tracks carry
// measured or estimated; pools may also be mixed or none.
type FeatureSource string

const (
	SourceMeasured  FeatureSource = "measured"
	SourceEstimated FeatureSource = "estimated"
	SourceMixed     FeatureSource = "mixed"
	SourceNone      FeatureSource = "none"
)

// Documented feature ranges. MinTempo and MaxTempo bound estimates; measured
// tempo may fall anywhere in MinMeasuredTempo-MaxMeasuredTempo.
const (
	MinTempo         = 60.0
	MaxTempo         = 200.0
	MinMeasuredTempo = 30.0
	MaxMeasuredTempo = 250.0
	MinLoudness      = -60.0
	MaxLoudness      = 0.0
)

// AudioFeatures describes how a track sounds. Source applies to the whole
// record.
type AudioFeatures struct {
	Tempo            float64 // BPM
	Energy           float64 // 0-1
	Valence          float64 // 0-1
	Danceability     float64 // 0-1
	Acousticness     float64 // 0-1
	Instrumentalness float64 // 0-1
	Speechiness      float64 // 0-1
	Loudness         float64 // dB, -60-0
	Source           FeatureSource
}

// NeutralFeatures is the mid-range profile used when nothing is known.
func NeutralFeatures() AudioFeatures {
	return AudioFeatures{
		Tempo:            100,
		Energy:           0.5,
		Valence:          0.5,
		Danceability:     0.5,
		Acousticness:     0.3,
		Instrumentalness: 0.05,
		Speechiness:      0.05,
		Loudness:         -8,
		Source:           SourceEstimated,
	}
}

// Clamp returns f with every value forced into its documented range.
func (f AudioFeatures) Clamp() AudioFeatures {
	f.Tempo = clamp(f.Tempo, MinTempo, MaxTempo)
	f.Energy = clamp(f.Energy, 0, 1)
	f.Valence = clamp(f.Valence, 0, 1)
	f.Danceability = clamp(f.Danceability, 0, 1)
	f.Acousticness = clamp(f.Acousticness, 0, 1)
	f.Instrumentalness = clamp(f.Instrumentalness, 0, 1)
	f.Speechiness = clamp(f.Speechiness, 0, 1)
	f.Loudness = clamp(f.Loudness, MinLoudness, MaxLoudness)
	return f
}

// Normalize forces f into the measured ranges and keeps Source. Unlike
// Clamp it leaves tempos outside the estimator's band alone.
func (f AudioFeatures) Normalize() AudioFeatures {
	f.Tempo = clamp(f.Tempo, MinMeasuredTempo, MaxMeasuredTempo)
	f.Energy = clamp(f.Energy, 0, 1)
	f.Valence = clamp(f.Valence, 0, 1)
	f.Danceability = clamp(f.Danceability, 0, 1)
	f.Acousticness = clamp(f.Acousticness, 0, 1)
	f.Instrumentalness = clamp(f.Instrumentalness, 0, 1)
	f.Speechiness = clamp(f.Speechiness, 0, 1)
	f.Loudness = clamp(f.Loudness, MinLoudness, MaxLoudness)
	return f
}

// Validate reports the first value outside the measured ranges.
func (f AudioFeatures) Validate() error {
	ratios := []struct {
		name string
		v    float64
	}{
		{"energy", f.Energy},
		{"valence", f.Valence},
		{"danceability", f.Danceability},
		{"acousticness", f.Acousticness},
		{"instrumentalness", f.Instrumentalness},
		{"speechiness", f.Speechiness},
	}
	for _, r := range ratios {
		if !within(r.v, 0, 1) {
			return fmt.Errorf("%w: %s %v is outside [0, 1]", ErrInvalidFeatures, r.name, r.v)
		}
	}
	if !within(f.Tempo, MinMeasuredTempo, MaxMeasuredTempo) {
		return fmt.Errorf("%w: tempo %v is outside [%v, %v]", ErrInvalidFeatures, f.Tempo, MinMeasuredTempo, MaxMeasuredTempo)
	}
	if !within(f.Loudness, MinLoudness, MaxLoudness) {
		return fmt.Errorf("%w: loudness %v is outside [%v, %v]", ErrInvalidFeatures, f.Loudness, MinLoudness, MaxLoudness)
	}
	return nil
}

// InRange reports whether every value is inside the measured ranges.
func (f AudioFeatures) InRange() bool {
	return f.Validate() == nil
}

func within(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Track is a candidate song. Preview, image and external URLs pass through
// untouched.
type Track struct {
	ID          string
	Title       string
	Artists     []string
	Album       string
	Popularity  int // 0-100
	Duration    time.Duration
	Explicit    bool
	Genres      []string
	Features    *AudioFeatures
	PreviewURL  string
	ImageURL    string
	ExternalURL string
}

// HasFeatures reports whether audio features are attached.
func (t Track) HasFeatures() bool {
	return t.Features != nil
}

// HasMeasuredFeatures reports whether attached features were measured.
func (t Track) HasMeasuredFeatures() bool {
	return t.Features != nil && t.Features.Source == SourceMeasured
}

// WithFeatures returns a copy of t carrying f. The receiver is unchanged.
func (t Track) WithFeatures(f AudioFeatures) Track {
	t.Features = &f
	return t
}

// FeaturesOrNeutral returns the attached features or NeutralFeatures.
func (t Track) FeaturesOrNeutral() AudioFeatures {
	if t.Features == nil {
		return NeutralFeatures()
	}
	return *t.Features
}
