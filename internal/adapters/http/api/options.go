package api

import "github.com/okian/moodmix/pkg/logger"

type serverConfig struct {
	logger        logger.Logger
	maxBodyBytes  int64
	maxBatchSize  int
	searchEnabled bool
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithMaxBatchSize limits how many requests POST /curate/batch accepts.
func WithMaxBatchSize(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBatchSize = n
		}
	}
}

// WithSearchEnabled reports search availability on /healthz.
func WithSearchEnabled(enabled bool) Option {
	return func(c *serverConfig) {
		c.searchEnabled = enabled
	}
}
