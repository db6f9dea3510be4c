// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultTargetCount is used when a request leaves target_count at zero.
	DefaultTargetCount int `koanf:"default_target_count"`

	// MaxTargetCount caps the playlist size a request may ask for.
	MaxTargetCount int `koanf:"max_target_count"`

	// ArtistCap is the per-artist repetition cap before relaxation.
	ArtistCap int `koanf:"artist_cap"`

	// TieTolerance is the score window in which tempo spread decides.
	TieTolerance float64 `koanf:"tie_tolerance"`

	// EnergyJumpThreshold is the largest adjacent energy step the flow
	// ordering tries to keep.
	EnergyJumpThreshold float64 `koanf:"energy_jump_threshold"`

	// GateSampleSize is how many leading candidates are checked for measured
	// audio features.
	GateSampleSize int `koanf:"gate_sample_size"`

	// EstimateCacheSize bounds the estimated-features cache. Zero disables it.
	EstimateCacheSize int `koanf:"estimate_cache_size"`

	// WorkerCount sets the batch curation concurrency.
	WorkerCount int `koanf:"worker_count"`

	SpotifyClientID     string `koanf:"spotify_client_id"`
	SpotifyClientSecret string `koanf:"spotify_client_secret"`
	SpotifyMarket       string `koanf:"spotify_market"`

	// SearchLimit caps the candidate pool gathered by the search adapter.
	SearchLimit int `koanf:"search_limit"`

	// SpotifyQueryLimit is how many tracks each search query asks for (1-50).
	SpotifyQueryLimit int `koanf:"spotify_query_limit"`

	LastfmAPIKey    string `koanf:"lastfm_api_key"`
	LastfmAPISecret string `koanf:"lastfm_api_secret"`

	// LastfmTopLimit is how many top artists become favorites.
	LastfmTopLimit int `koanf:"lastfm_top_limit"`

	// LastfmRecentLimit is how many recent scrobbles are inspected.
	LastfmRecentLimit int `koanf:"lastfm_recent_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DefaultTargetCount:  30,
		MaxTargetCount:      100,
		ArtistCap:           2,
		TieTolerance:        5,
		EnergyJumpThreshold: 0.25,
		GateSampleSize:      5,
		EstimateCacheSize:   10_000,
		WorkerCount:         runtime.NumCPU(),
		SpotifyMarket:       "US",
		SearchLimit:         100,
		SpotifyQueryLimit:   20,
		LastfmTopLimit:      20,
		LastfmRecentLimit:   50,
	}
}

// SpotifyEnabled reports whether Spotify credentials are configured.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// LastfmEnabled reports whether a Last.fm API key is configured.
func (c *Config) LastfmEnabled() bool {
	return c.LastfmAPIKey != ""
}

// Validate checks the values Load cannot fix up on its own.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefaultTargetCount <= 0:
		return fmt.Errorf("%w: default_target_count must be positive, got %d", ErrInvalidConfig, c.DefaultTargetCount)
	case c.MaxTargetCount < c.DefaultTargetCount:
		return fmt.Errorf("%w: max_target_count %d is below default_target_count %d",
			ErrInvalidConfig, c.MaxTargetCount, c.DefaultTargetCount)
	case c.ArtistCap <= 0:
		return fmt.Errorf("%w: artist_cap must be positive, got %d", ErrInvalidConfig, c.ArtistCap)
	case c.TieTolerance < 0:
		return fmt.Errorf("%w: tie_tolerance must not be negative", ErrInvalidConfig)
	case c.EnergyJumpThreshold <= 0 || c.EnergyJumpThreshold > 1:
		return fmt.Errorf("%w: energy_jump_threshold must be in (0, 1], got %v", ErrInvalidConfig, c.EnergyJumpThreshold)
	case c.GateSampleSize <= 0:
		return fmt.Errorf("%w: gate_sample_size must be positive, got %d", ErrInvalidConfig, c.GateSampleSize)
	case c.EstimateCacheSize < 0:
		return fmt.Errorf("%w: estimate_cache_size must not be negative", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.SearchLimit <= 0:
		return fmt.Errorf("%w: search_limit must be positive, got %d", ErrInvalidConfig, c.SearchLimit)
	case c.SpotifyQueryLimit <= 0 || c.SpotifyQueryLimit > 50:
		return fmt.Errorf("%w: spotify_query_limit must be in [1, 50], got %d", ErrInvalidConfig, c.SpotifyQueryLimit)
	case c.LastfmTopLimit <= 0:
		return fmt.Errorf("%w: lastfm_top_limit must be positive, got %d", ErrInvalidConfig, c.LastfmTopLimit)
	case c.LastfmRecentLimit <= 0:
		return fmt.Errorf("%w: lastfm_recent_limit must be positive, got %d", ErrInvalidConfig, c.LastfmRecentLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
