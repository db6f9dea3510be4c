// Package app runs the curation pipeline: estimate missing features, score,
// select and explain.
package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/okian/moodmix/internal/domain/estimate"
	"github.com/okian/moodmix/internal/domain/explain"
	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/internal/domain/scoring"
	"github.com/okian/moodmix/internal/domain/selection"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

// Defaults used when no option overrides them.
const (
	DefaultTargetCount    = 30
	DefaultMaxTargetCount = 100
	DefaultGateSampleSize = 5
)

// Request is one curation call.
type Request struct {
	Candidates  []model.Track
	Mood        model.MoodProfile
	User        *model.UserContext
	TargetCount int // 0 uses the configured default
	ArtistCap   int // 0 uses the configured default
}

// Result is a curated playlist with everything a caller needs to present it.
type Result struct {
	ID                     string
	Playlist               model.Playlist
	Stats                  model.DiversityStats
	Explanation            string
	FeatureSource          model.FeatureSource
	FeatureDataUnavailable bool
	EstimatedCount         int
	Relaxed                bool
	Shortfall              int
	Elapsed                time.Duration
}

// Curator wires the domain stages together. It keeps only configuration and
// is safe for concurrent use.
type Curator struct {
	estimator Estimator
	searcher  TrackSearcher
	history   HistoryProvider
	scorer    *scoring.Scorer
	selector  *selection.Selector
	explainer *explain.Explainer
	logger    logger.Logger

	defaultTarget int
	maxTarget     int
	artistCap     int
	tieTolerance  float64
	jumpThreshold float64
	gateSample    int
	workerCount   int
}

// New constructs a Curator.
func New(opts ...Option) *Curator {
	c := &Curator{
		estimator:     estimate.New(),
		defaultTarget: DefaultTargetCount,
		maxTarget:     DefaultMaxTargetCount,
		artistCap:     selection.DefaultArtistCap,
		tieTolerance:  selection.DefaultTieTolerance,
		jumpThreshold: selection.DefaultJumpThreshold,
		gateSample:    DefaultGateSampleSize,
		workerCount:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	c.logger = c.logger.Named("curator")

	c.scorer = scoring.New()
	c.selector = selection.New(
		selection.WithTieTolerance(c.tieTolerance),
		selection.WithEnergyJumpThreshold(c.jumpThreshold),
		selection.WithDefaultArtistCap(c.artistCap),
	)
	c.explainer = explain.New()
	return c
}

// Curate builds a playlist from req.Candidates. Contract violations come back
// as wrapped model errors; an empty pool is an empty playlist with a
// shortfall, not an error.
func (c *Curator) Curate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	target, artistCap, err := c.limits(req)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordCurationError("canceled")
		return Result{}, err
	}

	unavailable := !measuredInSample(req.Candidates, c.gateSample)
	if unavailable {
		c.logger.Warn(ctx, "no measured audio features in candidate sample, estimating",
			logger.Int("candidates", len(req.Candidates)),
			logger.Int("sample", c.gateSample),
		)
	}
	metrics.RecordPoolSize(len(req.Candidates))

	candidates, adjusted := normalizeFeatures(req.Candidates)
	if adjusted > 0 {
		c.logger.Warn(ctx, "attached audio features outside their ranges, clamped",
			logger.Int("tracks", adjusted),
		)
	}

	stage := time.Now()
	tracks, estimated := estimate.Missing(c.estimator, candidates)
	metrics.RecordEstimatedTracks(estimated)
	observeStage("estimate", stage)

	var scored []model.ScoredTrack
	if len(tracks) > 0 {
		stage = time.Now()
		scored, err = c.scorer.Score(tracks, req.Mood, req.User)
		if err != nil {
			metrics.RecordCurationError("score")
			return Result{}, fmt.Errorf("score candidates: %w", err)
		}
		observeStage("score", stage)
	}

	stage = time.Now()
	playlist, err := c.selector.Select(scored, target, artistCap)
	if err != nil {
		metrics.RecordCurationError("select")
		return Result{}, fmt.Errorf("select playlist: %w", err)
	}
	observeStage("select", stage)

	stage = time.Now()
	explanation := c.explainer.Explain(playlist, req.Mood)
	observeStage("explain", stage)

	res := Result{
		ID:                     uuid.NewString(),
		Playlist:               playlist,
		Stats:                  playlist.Stats,
		Explanation:            explanation,
		FeatureSource:          model.FeatureSourceOf(tracks),
		FeatureDataUnavailable: unavailable,
		EstimatedCount:         estimated,
		Relaxed:                playlist.Relaxed,
		Shortfall:              playlist.Shortfall,
		Elapsed:                time.Since(start),
	}
	c.record(ctx, res)
	return res, nil
}

// limits validates the request and resolves defaulted target and cap.
func (c *Curator) limits(req Request) (target, artistCap int, err error) {
	if err := req.Mood.Validate(); err != nil {
		metrics.RecordCurationError("invalid_mood")
		return 0, 0, err
	}

	target = req.TargetCount
	switch {
	case target < 0:
		metrics.RecordCurationError("invalid_target")
		return 0, 0, fmt.Errorf("%w: %d is negative", model.ErrInvalidTargetCount, target)
	case target > c.maxTarget:
		metrics.RecordCurationError("invalid_target")
		return 0, 0, fmt.Errorf("%w: %d exceeds the maximum of %d", model.ErrInvalidTargetCount, target, c.maxTarget)
	case target == 0:
		target = c.defaultTarget
	}

	artistCap = req.ArtistCap
	if artistCap < 0 {
		metrics.RecordCurationError("invalid_artist_cap")
		return 0, 0, fmt.Errorf("%w: %d is negative", model.ErrInvalidArtistCap, artistCap)
	}
	if artistCap == 0 {
		artistCap = c.artistCap
	}
	return target, artistCap, nil
}

func (c *Curator) record(ctx context.Context, res Result) {
	metrics.RecordCuration(string(res.FeatureSource))
	metrics.RecordCurationLatency(float64(res.Elapsed.Microseconds()) / 1000)
	metrics.RecordDiversityScore(res.Stats.Score)
	if res.Relaxed {
		metrics.RecordRelaxation()
	}
	if res.Shortfall > 0 {
		metrics.RecordShortfall()
	}

	c.logger.Info(ctx, "playlist curated",
		logger.String("id", res.ID),
		logger.Int("tracks", res.Playlist.Len()),
		logger.String("feature_source", string(res.FeatureSource)),
		logger.Int("estimated", res.EstimatedCount),
		logger.Bool("relaxed", res.Relaxed),
		logger.Int("shortfall", res.Shortfall),
		logger.Float64("diversity", res.Stats.Score),
		logger.Duration("elapsed", res.Elapsed),
	)
}

// measuredInSample reports whether any of the first n candidates carries
// measured features. An empty pool counts as measured so it is not flagged.
func measuredInSample(tracks []model.Track, n int) bool {
	if len(tracks) == 0 {
		return true
	}
	if n > len(tracks) {
		n = len(tracks)
	}
	for _, t := range tracks[:n] {
		if t.HasMeasuredFeatures() {
			return true
		}
	}
	return false
}

// normalizeFeatures returns tracks with every attached feature record forced
// into range, plus how many records changed. The input is not mutated.
func normalizeFeatures(tracks []model.Track) ([]model.Track, int) {
	out := tracks
	adjusted := 0
	for i, t := range tracks {
		if !t.HasFeatures() || t.Features.InRange() {
			continue
		}
		if adjusted == 0 {
			out = append([]model.Track(nil), tracks...)
		}
		out[i] = t.WithFeatures(t.Features.Normalize())
		adjusted++
	}
	return out, adjusted
}

func observeStage(name string, since time.Time) {
	metrics.RecordStageLatency(name, float64(time.Since(since).Microseconds())/1000)
}
