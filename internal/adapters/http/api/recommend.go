package api

import (
	"net/http"

	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/pkg/logger"
)

// RecommendHandler handles searcher-backed recommendations.
type RecommendHandler struct {
	deps         Dependencies
	logger       logger.Logger
	maxBodyBytes int64
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps Dependencies, cfg serverConfig) *RecommendHandler {
	return &RecommendHandler{deps: deps, logger: cfg.logger, maxBodyBytes: cfg.maxBodyBytes}
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	ctx := r.Context()
	if r.Method != http.MethodPost {
		fail(ctx, w, h.logger, op, NewKind(op, ErrMethod))
		return
	}
	var body recommendRequest
	if err := decode(w, r, h.maxBodyBytes, &body); err != nil {
		fail(ctx, w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Recommend(ctx, app.RecommendRequest{
		Mood:        body.Mood.model(),
		UserID:      body.UserID,
		TargetCount: body.TargetCount,
		ArtistCap:   body.ArtistCap,
	})
	if err != nil {
		fail(ctx, w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newCurateResponse(res))
}
