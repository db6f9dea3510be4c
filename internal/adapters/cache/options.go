package cache

// Option applies a configuration option to Estimates.
type Option func(*Estimates)

// WithMaxSize sets the maximum number of cached tracks.
// If maxSize > 0: bounded, oldest entry evicted first.
// If maxSize <= 0: unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *Estimates) {
		c.maxSize = maxSize
	}
}
