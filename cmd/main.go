package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/moodmix/internal/adapters/cache"
	"github.com/okian/moodmix/internal/adapters/http/api"
	"github.com/okian/moodmix/internal/adapters/http/swagger"
	"github.com/okian/moodmix/internal/adapters/lastfm"
	"github.com/okian/moodmix/internal/adapters/spotify"
	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/internal/config"
	"github.com/okian/moodmix/internal/domain/estimate"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithFormat(cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
}

// newMux registers the API and OpenAPI routes over a curator built from cfg.
func newMux(ctx context.Context, cfg *config.Config, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(newCurator(ctx, cfg, log),
		api.WithLogger(log),
		api.WithSearchEnabled(cfg.SpotifyEnabled()),
	).Register(ctx, mux)
	return mux
}

// newCurator builds the curator and whichever collaborators cfg enables.
func newCurator(ctx context.Context, cfg *config.Config, log logger.Logger) *app.Curator {
	opts := []app.Option{
		app.WithLogger(log),
		app.WithDefaultTargetCount(cfg.DefaultTargetCount),
		app.WithMaxTargetCount(cfg.MaxTargetCount),
		app.WithArtistCap(cfg.ArtistCap),
		app.WithTieTolerance(cfg.TieTolerance),
		app.WithEnergyJumpThreshold(cfg.EnergyJumpThreshold),
		app.WithGateSampleSize(cfg.GateSampleSize),
		app.WithWorkerCount(cfg.WorkerCount),
	}

	if cfg.EstimateCacheSize > 0 {
		opts = append(opts, app.WithEstimator(cache.New(estimate.New(), cache.WithMaxSize(cfg.EstimateCacheSize))))
	}

	if cfg.SpotifyEnabled() {
		client := spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		opts = append(opts, app.WithSearcher(spotify.New(client,
			spotify.WithMarket(cfg.SpotifyMarket),
			spotify.WithPoolSize(cfg.SearchLimit),
			spotify.WithQueryLimit(cfg.SpotifyQueryLimit),
			spotify.WithLogger(log),
		)))
		log.Info(ctx, "spotify search enabled", logger.String("market", cfg.SpotifyMarket))
	} else {
		log.Warn(ctx, "spotify credentials missing; /recommend is disabled")
	}

	if cfg.LastfmEnabled() {
		opts = append(opts, app.WithHistory(lastfm.New(
			lastfm.NewSource(cfg.LastfmAPIKey, cfg.LastfmAPISecret),
			lastfm.WithTopLimit(cfg.LastfmTopLimit),
			lastfm.WithRecentLimit(cfg.LastfmRecentLimit),
			lastfm.WithLogger(log),
		)))
		log.Info(ctx, "last.fm history enabled")
	}

	return app.New(opts...)
}
