package app

import (
	"context"

	"github.com/okian/moodmix/internal/domain/model"
)

// TrackSearcher turns a mood into a pool of candidate tracks.
type TrackSearcher interface {
	Search(ctx context.Context, mood model.MoodProfile) ([]model.Track, error)
}

// HistoryProvider loads listening history for a user. A nil context with a
// nil error means the user has no usable history.
type HistoryProvider interface {
	UserContext(ctx context.Context, userID string) (*model.UserContext, error)
}

// Estimator derives audio features for a track that carries none.
type Estimator interface {
	Estimate(t model.Track) model.AudioFeatures
}
