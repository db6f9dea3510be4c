package spotify

import "errors"

// ErrNoResults is returned when every search query failed.
var ErrNoResults = errors.New("spotify: every search query failed")
