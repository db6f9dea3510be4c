package selection

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithTieTolerance sets the score window, in points, inside which tempo
// spread decides between candidates.
func WithTieTolerance(points float64) Option {
	return func(s *Selector) {
		if points >= 0 {
			s.tieTolerance = points
		}
	}
}

// WithEnergyJumpThreshold sets the largest adjacent energy difference the
// flow ordering tolerates without trying to repair it.
func WithEnergyJumpThreshold(threshold float64) Option {
	return func(s *Selector) {
		if threshold > 0 {
			s.jumpThreshold = threshold
		}
	}
}

// WithDefaultArtistCap sets the cap used when Select is called with 0.
func WithDefaultArtistCap(limit int) Option {
	return func(s *Selector) {
		if limit > 0 {
			s.defaultCap = limit
		}
	}
}
