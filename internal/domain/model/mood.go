// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Bounds for MoodProfile levels.
const (
	MinLevel = 1
	MaxLevel = 10
)

// MoodProfile is the structured summary of a listener's stated mood.
type MoodProfile struct {
	PrimaryMood        string
	EnergyLevel        int // 1-10
	EmotionalIntensity int // 1-10
	Context            string
	Tags               []string
}

// Validate rejects an empty primary mood or levels outside 1-10.
func (m MoodProfile) Validate() error {
	if m.Category() == "" {
		return fmt.Errorf("%w: primary mood is empty", ErrInvalidMood)
	}
	if m.EnergyLevel < MinLevel || m.EnergyLevel > MaxLevel {
		return fmt.Errorf("%w: energy level %d outside %d-%d", ErrInvalidMood, m.EnergyLevel, MinLevel, MaxLevel)
	}
	if m.EmotionalIntensity < MinLevel || m.EmotionalIntensity > MaxLevel {
		return fmt.Errorf("%w: emotional intensity %d outside %d-%d",
			ErrInvalidMood, m.EmotionalIntensity, MinLevel, MaxLevel)
	}
	return nil
}

// Category returns the normalized primary mood used for rule lookups.
func (m MoodProfile) Category() string {
	return strings.ToLower(strings.TrimSpace(m.PrimaryMood))
}

// UserContext carries listening history. A nil *UserContext is neutral.
type UserContext struct {
	UserID          string
	FavoriteArtists []string
	FavoriteGenres  []string
	RecentArtists   []string
	AverageEnergy   *float64
}

// HasRecentArtists reports whether recent listening history is known.
func (u *UserContext) HasRecentArtists() bool {
	return u != nil && len(u.RecentArtists) > 0
}
