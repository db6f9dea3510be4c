package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/moodmix/pkg/metrics"
)

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	searchEnabled bool
	metrics       http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(searchEnabled bool) *HealthHandler {
	return &HealthHandler{
		searchEnabled: searchEnabled,
		metrics:       promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Search: h.searchEnabled})
}

// HandleMetrics serves the custom Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
