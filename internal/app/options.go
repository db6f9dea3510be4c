package app

import "github.com/okian/moodmix/pkg/logger"

// Option applies a configuration option to the Curator.
type Option func(*Curator)

// WithEstimator replaces the feature estimator, typically with a cache.
func WithEstimator(e Estimator) Option {
	return func(c *Curator) {
		if e != nil {
			c.estimator = e
		}
	}
}

// WithSearcher sets the track searcher used by Recommend.
func WithSearcher(s TrackSearcher) Option {
	return func(c *Curator) {
		c.searcher = s
	}
}

// WithHistory sets the history provider used by Recommend.
func WithHistory(h HistoryProvider) Option {
	return func(c *Curator) {
		c.history = h
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Curator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDefaultTargetCount sets the playlist size used when a request asks for 0.
func WithDefaultTargetCount(n int) Option {
	return func(c *Curator) {
		if n > 0 {
			c.defaultTarget = n
		}
	}
}

// WithMaxTargetCount sets the largest playlist a request may ask for.
func WithMaxTargetCount(n int) Option {
	return func(c *Curator) {
		if n > 0 {
			c.maxTarget = n
		}
	}
}

// WithArtistCap sets the artist cap used when a request asks for 0.
func WithArtistCap(n int) Option {
	return func(c *Curator) {
		if n > 0 {
			c.artistCap = n
		}
	}
}

// WithTieTolerance sets the score window inside which tempo spread decides.
func WithTieTolerance(points float64) Option {
	return func(c *Curator) {
		if points >= 0 {
			c.tieTolerance = points
		}
	}
}

// WithEnergyJumpThreshold sets the largest energy step flow ordering tolerates.
func WithEnergyJumpThreshold(threshold float64) Option {
	return func(c *Curator) {
		if threshold > 0 {
			c.jumpThreshold = threshold
		}
	}
}

// WithGateSampleSize sets how many leading candidates the feature gate inspects.
func WithGateSampleSize(n int) Option {
	return func(c *Curator) {
		if n > 0 {
			c.gateSample = n
		}
	}
}

// WithWorkerCount sets the batch concurrency.
func WithWorkerCount(n int) Option {
	return func(c *Curator) {
		if n > 0 {
			c.workerCount = n
		}
	}
}
