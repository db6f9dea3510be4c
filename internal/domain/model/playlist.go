package model

// ScoredTrack is a track with its relevance breakdown. Index is the track's
// position in the scorer input and breaks ties.
type ScoredTrack struct {
	Track
	Score      float64
	Audio      float64
	Preference float64
	Popularity float64
	Novelty    float64
	Index      int
}

// DiversityStats summarizes how varied a playlist is.
type DiversityStats struct {
	UniqueArtists int
	TempoMean     float64
	TempoStdDev   float64
	EnergyMean    float64
	EnergyStdDev  float64
	Score         float64 // 0-100
}

// Playlist is the ordered result of selection. Tracks are in listening order
// and every ID is unique.
type Playlist struct {
	Tracks             []Track
	TargetSize         int
	Stats              DiversityStats
	Relaxed            bool
	EffectiveArtistCap int
	Shortfall          int
}

// Len returns the number of tracks.
func (p Playlist) Len() int { return len(p.Tracks) }

// FeatureSourceOf classifies a pool by where its features came from.
func FeatureSourceOf(tracks []Track) FeatureSource {
	if len(tracks) == 0 {
		return SourceNone
	}
	var measured, estimated int
	for _, t := range tracks {
		switch {
		case t.Features == nil:
		case t.Features.Source == SourceMeasured:
			measured++
		default:
			estimated++
		}
	}
	switch {
	case measured == len(tracks):
		return SourceMeasured
	case estimated == len(tracks):
		return SourceEstimated
	case measured == 0 && estimated == 0:
		return SourceNone
	default:
		return SourceMixed
	}
}
