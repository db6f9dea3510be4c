// Package metrics provides Prometheus metrics for the moodmix curation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	enabled          bool
	registry         prometheus.Registerer

	// Curation pipeline
	curations       *prometheus.CounterVec
	curationErrors  *prometheus.CounterVec
	curationLatency prometheus.Histogram
	stageLatency    *prometheus.HistogramVec
	relaxations     prometheus.Counter
	shortfalls      prometheus.Counter
	estimatedTracks prometheus.Counter
	diversityScore  prometheus.Histogram
	poolSize        prometheus.Histogram
	batchSize       prometheus.Histogram
	taskLatency     prometheus.Histogram

	// Estimate cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheSize   prometheus.Gauge

	// Collaborators
	collaboratorErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served on /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// collectors land on prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "moodmix",
		subsystem:        "curator",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		scoreBuckets:     []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.curations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "curations_total",
		Help:      "Completed curations by feature source",
	}, []string{"feature_source"})

	m.curationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "curation_errors_total",
		Help:      "Rejected or failed curations by error kind",
	}, []string{"kind"})

	m.curationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "curation_latency_milliseconds",
		Help:      "End-to-end curation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.stageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_latency_milliseconds",
		Help:      "Latency of a single pipeline stage in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.relaxations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artist_cap_relaxations_total",
		Help:      "Playlists that needed the artist cap raised to reach their target size",
	})

	m.shortfalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shortfalls_total",
		Help:      "Playlists returned with fewer tracks than requested",
	})

	m.estimatedTracks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimated_tracks_total",
		Help:      "Candidate tracks whose audio features were estimated",
	})

	m.diversityScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "playlist_diversity_score",
		Help:      "Diversity score (0-100) of curated playlists",
		Buckets:   m.scoreBuckets,
	})

	m.poolSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidate_pool_size",
		Help:      "Number of candidate tracks per curation",
		Buckets:   []float64{0, 10, 25, 50, 75, 100, 150, 200},
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Number of requests per batch curation",
		Buckets:   []float64{1, 2, 5, 10, 20, 50},
	})

	m.taskLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_task_latency_milliseconds",
		Help:      "Latency of one batch task run by the worker pool in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimate_cache_hits_total",
		Help:      "Estimated features served from the cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimate_cache_misses_total",
		Help:      "Estimated features computed because the cache had no entry",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimate_cache_entries",
		Help:      "Entries currently held by the estimate cache",
	})

	m.collaboratorErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collaborator_errors_total",
		Help:      "Errors returned by external collaborators (search, history, features)",
	}, []string{"collaborator"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordCuration counts a completed curation.
func (m *Manager) RecordCuration(featureSource string) {
	if m.enabled {
		m.curations.WithLabelValues(featureSource).Inc()
	}
}

// RecordCurationError counts a rejected or failed curation.
func (m *Manager) RecordCurationError(kind string) {
	if m.enabled {
		m.curationErrors.WithLabelValues(kind).Inc()
	}
}

// RecordCurationLatency observes end-to-end latency.
func (m *Manager) RecordCurationLatency(latencyMs float64) {
	if m.enabled {
		m.curationLatency.Observe(latencyMs)
	}
}

// RecordStageLatency observes one pipeline stage.
func (m *Manager) RecordStageLatency(stage string, latencyMs float64) {
	if m.enabled {
		m.stageLatency.WithLabelValues(stage).Observe(latencyMs)
	}
}

// RecordRelaxation counts an artist cap relaxation.
func (m *Manager) RecordRelaxation() {
	if m.enabled {
		m.relaxations.Inc()
	}
}

// RecordShortfall counts an undersized playlist.
func (m *Manager) RecordShortfall() {
	if m.enabled {
		m.shortfalls.Inc()
	}
}

// RecordEstimatedTracks adds n estimated tracks.
func (m *Manager) RecordEstimatedTracks(n int) {
	if m.enabled && n > 0 {
		m.estimatedTracks.Add(float64(n))
	}
}

// RecordDiversityScore observes a playlist diversity score.
func (m *Manager) RecordDiversityScore(score float64) {
	if m.enabled {
		m.diversityScore.Observe(score)
	}
}

// RecordPoolSize observes a candidate pool size.
func (m *Manager) RecordPoolSize(n int) {
	if m.enabled {
		m.poolSize.Observe(float64(n))
	}
}

// RecordBatchSize observes a batch request size.
func (m *Manager) RecordBatchSize(n int) {
	if m.enabled {
		m.batchSize.Observe(float64(n))
	}
}

// RecordTaskLatency observes one worker pool task.
func (m *Manager) RecordTaskLatency(latencyMs float64) {
	if m.enabled {
		m.taskLatency.Observe(latencyMs)
	}
}

// RecordCacheHit counts an estimate cache hit.
func (m *Manager) RecordCacheHit() {
	if m.enabled {
		m.cacheHits.Inc()
	}
}

// RecordCacheMiss counts an estimate cache miss.
func (m *Manager) RecordCacheMiss() {
	if m.enabled {
		m.cacheMisses.Inc()
	}
}

// UpdateCacheSize sets the estimate cache gauge.
func (m *Manager) UpdateCacheSize(n int) {
	if m.enabled {
		m.cacheSize.Set(float64(n))
	}
}

// RecordCollaboratorError counts an error from an external collaborator.
func (m *Manager) RecordCollaboratorError(collaborator string) {
	if m.enabled {
		m.collaboratorErrors.WithLabelValues(collaborator).Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// Package-level helpers forward to the global manager.

func RecordCuration(featureSource string)         { globalManager.RecordCuration(featureSource) }
func RecordCurationError(kind string)             { globalManager.RecordCurationError(kind) }
func RecordCurationLatency(latencyMs float64)     { globalManager.RecordCurationLatency(latencyMs) }
func RecordStageLatency(stage string, ms float64) { globalManager.RecordStageLatency(stage, ms) }
func RecordRelaxation()                           { globalManager.RecordRelaxation() }
func RecordShortfall()                            { globalManager.RecordShortfall() }
func RecordEstimatedTracks(n int)                 { globalManager.RecordEstimatedTracks(n) }
func RecordDiversityScore(score float64)          { globalManager.RecordDiversityScore(score) }
func RecordPoolSize(n int)                        { globalManager.RecordPoolSize(n) }
func RecordBatchSize(n int)                       { globalManager.RecordBatchSize(n) }
func RecordTaskLatency(latencyMs float64)         { globalManager.RecordTaskLatency(latencyMs) }
func RecordCacheHit()                             { globalManager.RecordCacheHit() }
func RecordCacheMiss()                            { globalManager.RecordCacheMiss() }
func UpdateCacheSize(n int)                       { globalManager.UpdateCacheSize(n) }
func RecordCollaboratorError(name string)         { globalManager.RecordCollaboratorError(name) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records an HTTP request duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the registry that backs the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
