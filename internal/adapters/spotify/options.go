package spotify

import "github.com/okian/moodmix/pkg/logger"

// Option applies a configuration option to the Searcher.
type Option func(*Searcher)

// WithMarket sets the market searches are restricted to.
func WithMarket(market string) Option {
	return func(s *Searcher) {
		if market != "" {
			s.market = market
		}
	}
}

// WithPoolSize caps the number of candidates returned by Search.
func WithPoolSize(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// WithQueryLimit sets how many tracks each query asks for.
func WithQueryLimit(n int) Option {
	return func(s *Searcher) {
		if n > 0 && n <= maxQueryLimit {
			s.queryLimit = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}
