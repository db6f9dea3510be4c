package model

import "errors"

// Contract violations. Data gaps and under-supply are never errors.
var (
	ErrInvalidMood        = errors.New("invalid mood profile")
	ErrInvalidTargetCount = errors.New("invalid target count")
	ErrNoCandidates       = errors.New("no candidate tracks")
	ErrInvalidArtistCap   = errors.New("invalid artist cap")
	ErrInvalidFeatures    = errors.New("invalid audio features")
)
