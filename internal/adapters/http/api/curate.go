package api

import (
	"fmt"
	"net/http"

	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/pkg/logger"
)

// CurateHandler handles curation requests with caller-supplied candidates.
type CurateHandler struct {
	deps         Dependencies
	logger       logger.Logger
	maxBodyBytes int64
	maxBatchSize int
}

// NewCurateHandler creates a new curate handler.
func NewCurateHandler(deps Dependencies, cfg serverConfig) *CurateHandler {
	return &CurateHandler{
		deps:         deps,
		logger:       cfg.logger,
		maxBodyBytes: cfg.maxBodyBytes,
		maxBatchSize: cfg.maxBatchSize,
	}
}

// HandleCurate handles POST /curate requests.
func (h *CurateHandler) HandleCurate(w http.ResponseWriter, r *http.Request) {
	const op = "api.curate"
	ctx := r.Context()
	if r.Method != http.MethodPost {
		fail(ctx, w, h.logger, op, NewKind(op, ErrMethod))
		return
	}
	var body curateRequest
	if err := decode(w, r, h.maxBodyBytes, &body); err != nil {
		fail(ctx, w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	req, err := body.model()
	if err != nil {
		fail(ctx, w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Curate(ctx, req)
	if err != nil {
		fail(ctx, w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newCurateResponse(res))
}

// HandleBatch handles POST /curate/batch requests. Per-request failures are
// reported inline; the response is 200 whenever the batch itself is valid.
func (h *CurateHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.curate_batch"
	ctx := r.Context()
	if r.Method != http.MethodPost {
		fail(ctx, w, h.logger, op, NewKind(op, ErrMethod))
		return
	}
	var body batchRequest
	if err := decode(w, r, h.maxBodyBytes, &body); err != nil {
		fail(ctx, w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(body.Requests) > h.maxBatchSize {
		fail(ctx, w, h.logger, op, WrapKind(op, ErrBatchTooLarge,
			fmt.Errorf("%d requests, at most %d allowed", len(body.Requests), h.maxBatchSize)))
		return
	}

	reqs := make([]app.Request, len(body.Requests))
	for i, b := range body.Requests {
		req, err := b.model()
		if err != nil {
			fail(ctx, w, h.logger, op, WrapKind(op, ErrBadRequest, fmt.Errorf("request %d: %w", i, err)))
			return
		}
		reqs[i] = req
	}

	results := h.deps.CurateBatch(ctx, reqs)
	out := batchResponse{Results: make([]batchItem, len(results))}
	for i, res := range results {
		if res.Err != nil {
			status, code := classify(res.Err)
			e := newErrorResponse(status, code, res.Err)
			out.Results[i] = batchItem{Error: &e}
			continue
		}
		cr := newCurateResponse(res.Result)
		out.Results[i] = batchItem{Result: &cr}
	}
	writeJSON(w, http.StatusOK, out)
}
