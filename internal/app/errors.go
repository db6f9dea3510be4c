package app

import "errors"

var (
	// ErrSearchUnavailable is returned by Recommend when no TrackSearcher is configured.
	ErrSearchUnavailable = errors.New("track search unavailable")
	// ErrSearchFailed wraps errors returned by the TrackSearcher.
	ErrSearchFailed = errors.New("track search failed")
	// ErrBatchTaskFailed marks a batch entry that never produced a result.
	ErrBatchTaskFailed = errors.New("batch task failed")
)
