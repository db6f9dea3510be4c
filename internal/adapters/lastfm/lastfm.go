// Package lastfm loads a listener's history from Last.fm.
package lastfm

import (
	"context"
	"strings"

	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

const (
	defaultTopLimit    = 20
	defaultRecentLimit = 50
	maxTags            = 10
)

// Provider builds user contexts from Last.fm history.
type Provider struct {
	source      Source
	topLimit    int
	recentLimit int
	logger      logger.Logger
}

// Option applies a configuration option to the Provider.
type Option func(*Provider)

// WithTopLimit sets how many top artists become favorites.
func WithTopLimit(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.topLimit = n
		}
	}
}

// WithRecentLimit sets how many recent tracks are inspected.
func WithRecentLimit(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.recentLimit = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Provider reading from source.
func New(source Source, opts ...Option) *Provider {
	p := &Provider{
		source:      source,
		topLimit:    defaultTopLimit,
		recentLimit: defaultRecentLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get()
	}
	p.logger = p.logger.Named("lastfm")
	return p
}

// UserContext returns favorites from top artists, genres from top tags and
// recent artists from recent tracks. An empty user id yields no context.
// Top artists are required; tags and recent tracks are best effort.
func (p *Provider) UserContext(ctx context.Context, userID string) (*model.UserContext, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	favorites, err := p.source.TopArtists(userID, p.topLimit)
	if err != nil {
		metrics.RecordCollaboratorError("history")
		return nil, err
	}

	tags, err := p.source.TopTags(userID)
	if err != nil {
		metrics.RecordCollaboratorError("history")
		p.logger.Warn(ctx, "top tags unavailable", logger.String("user", userID), logger.Error(err))
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	recent, err := p.source.RecentArtists(userID, p.recentLimit)
	if err != nil {
		metrics.RecordCollaboratorError("history")
		p.logger.Warn(ctx, "recent tracks unavailable", logger.String("user", userID), logger.Error(err))
	}

	return &model.UserContext{
		UserID:          userID,
		FavoriteArtists: distinct(favorites),
		FavoriteGenres:  distinct(tags),
		RecentArtists:   distinct(recent),
	}, nil
}

// distinct drops blanks and case-insensitive repeats, keeping first spelling.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
