// Package api exposes the curator over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/pkg/logger"
)

const (
	defaultMaxBodyBytes = 4 << 20
	defaultMaxBatchSize = 20
)

// Dependencies required by HTTP handlers. *app.Curator satisfies it.
type Dependencies interface {
	Curate(ctx context.Context, req app.Request) (app.Result, error)
	CurateBatch(ctx context.Context, reqs []app.Request) []app.BatchResult
	Recommend(ctx context.Context, req app.RecommendRequest) (app.Result, error)
}

// Server wires HTTP routes for the curation API.
type Server struct {
	curateHandler    *CurateHandler
	recommendHandler *RecommendHandler
	healthHandler    *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{
		maxBodyBytes: defaultMaxBodyBytes,
		maxBatchSize: defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}
	cfg.logger = cfg.logger.Named("http")

	return &Server{
		curateHandler:    NewCurateHandler(deps, cfg),
		recommendHandler: NewRecommendHandler(deps, cfg),
		healthHandler:    NewHealthHandler(cfg.searchEnabled),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/curate", MetricsMiddleware(s.curateHandler.HandleCurate, "curate"))
	mux.HandleFunc("/curate/batch", MetricsMiddleware(s.curateHandler.HandleBatch, "curate_batch"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, newErrorResponse(status, code, err))
}

func newErrorResponse(status int, code string, err error) errorResponse {
	msg := http.StatusText(status)
	if err != nil && status < http.StatusInternalServerError {
		msg = err.Error()
	}
	return errorResponse{Code: code, Message: msg}
}

// decode reads a JSON body of at most limit bytes into v.
func decode(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// classify maps an error to an HTTP status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMethod):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusBadRequest, "batch_too_large"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, model.ErrInvalidMood):
		return http.StatusBadRequest, "invalid_mood"
	case errors.Is(err, model.ErrInvalidTargetCount):
		return http.StatusBadRequest, "invalid_target_count"
	case errors.Is(err, model.ErrInvalidArtistCap):
		return http.StatusBadRequest, "invalid_artist_cap"
	case errors.Is(err, model.ErrNoCandidates):
		return http.StatusBadRequest, "no_candidates"
	case errors.Is(err, app.ErrSearchUnavailable):
		return http.StatusServiceUnavailable, "search_unavailable"
	case errors.Is(err, app.ErrSearchFailed):
		return http.StatusBadGateway, "search_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail classifies err, logs server-side failures and writes the response.
func fail(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("op", op), logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, code, err)
}
