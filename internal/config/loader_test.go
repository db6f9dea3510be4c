package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/moodmix/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultTargetCount, convey.ShouldEqual, 30)
				convey.So(cfg.ArtistCap, convey.ShouldEqual, 2)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOODMIX_ADDR", ":8080")
			_ = os.Setenv("MOODMIX_DEFAULT_TARGET_COUNT", "20")
			_ = os.Setenv("MOODMIX_ARTIST_CAP", "3")
			_ = os.Setenv("MOODMIX_WORKER_COUNT", "16")
			_ = os.Setenv("MOODMIX_ENERGY_JUMP_THRESHOLD", "0.3")
			_ = os.Setenv("MOODMIX_SPOTIFY_MARKET", "DE")
			_ = os.Setenv("MOODMIX_SPOTIFY_QUERY_LIMIT", "50")
			_ = os.Setenv("MOODMIX_LASTFM_TOP_LIMIT", "10")
			_ = os.Setenv("MOODMIX_LASTFM_RECENT_LIMIT", "200")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultTargetCount, convey.ShouldEqual, 20)
				convey.So(cfg.ArtistCap, convey.ShouldEqual, 3)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.EnergyJumpThreshold, convey.ShouldEqual, 0.3)
				convey.So(cfg.SpotifyMarket, convey.ShouldEqual, "DE")
				convey.So(cfg.SpotifyQueryLimit, convey.ShouldEqual, 50)
				convey.So(cfg.LastfmTopLimit, convey.ShouldEqual, 10)
				convey.So(cfg.LastfmRecentLimit, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
default_target_count: 25
artist_cap: 4
worker_count: 24
estimate_cache_size: 500
lastfm_api_key: "abc"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MOODMIX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DefaultTargetCount, convey.ShouldEqual, 25)
				convey.So(cfg.ArtistCap, convey.ShouldEqual, 4)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.EstimateCacheSize, convey.ShouldEqual, 500)
				convey.So(cfg.LastfmEnabled(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
artist_cap: 4
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MOODMIX_CONFIG", tmpFile)
			_ = os.Setenv("MOODMIX_ADDR", ":8080")
			_ = os.Setenv("MOODMIX_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // env
				convey.So(cfg.ArtistCap, convey.ShouldEqual, 4)    // file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32) // env
				convey.So(cfg.SearchLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MOODMIX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MOODMIX_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid artist cap", func() {
			_ = os.Setenv("MOODMIX_ARTIST_CAP", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "artist_cap")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MOODMIX_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# This is a comment
addr: ":9090"  # Inline comment
log_format: json
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MOODMIX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MOODMIX_CONFIG",
		"MOODMIX_ADDR",
		"MOODMIX_DEFAULT_TARGET_COUNT",
		"MOODMIX_ARTIST_CAP",
		"MOODMIX_WORKER_COUNT",
		"MOODMIX_ENERGY_JUMP_THRESHOLD",
		"MOODMIX_SPOTIFY_MARKET",
		"MOODMIX_SPOTIFY_QUERY_LIMIT",
		"MOODMIX_LASTFM_TOP_LIMIT",
		"MOODMIX_LASTFM_RECENT_LIMIT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "moodmix-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
