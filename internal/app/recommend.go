package app

import (
	"context"
	"fmt"

	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

// RecommendRequest asks for a playlist sourced from the configured searcher.
type RecommendRequest struct {
	Mood        model.MoodProfile
	UserID      string
	TargetCount int
	ArtistCap   int
}

// Recommend searches for candidates, loads the user's history when it can
// and curates the pool. History failures degrade to no history.
func (c *Curator) Recommend(ctx context.Context, req RecommendRequest) (Result, error) {
	if c.searcher == nil {
		metrics.RecordCurationError("search_unavailable")
		return Result{}, ErrSearchUnavailable
	}
	if err := req.Mood.Validate(); err != nil {
		metrics.RecordCurationError("invalid_mood")
		return Result{}, err
	}

	tracks, err := c.searcher.Search(ctx, req.Mood)
	if err != nil {
		metrics.RecordCollaboratorError("search")
		c.logger.Error(ctx, "track search failed", logger.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	return c.Curate(ctx, Request{
		Candidates:  tracks,
		Mood:        req.Mood,
		User:        c.userContext(ctx, req.UserID),
		TargetCount: req.TargetCount,
		ArtistCap:   req.ArtistCap,
	})
}

func (c *Curator) userContext(ctx context.Context, userID string) *model.UserContext {
	if c.history == nil || userID == "" {
		return nil
	}
	user, err := c.history.UserContext(ctx, userID)
	if err != nil {
		metrics.RecordCollaboratorError("history")
		c.logger.Warn(ctx, "user history unavailable, curating without it",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		return nil
	}
	return user
}
