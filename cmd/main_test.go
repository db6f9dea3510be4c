package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/moodmix/internal/config"
	"github.com/okian/moodmix/pkg/logger"
)

func TestNewMux(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		t.Setenv("MOODMIX_CONFIG", "")
		t.Setenv("MOODMIX_ADDR", ":8181")
		t.Setenv("MOODMIX_WORKER_COUNT", "2")
		t.Setenv("MOODMIX_DEFAULT_TARGET_COUNT", "3")
		t.Setenv("MOODMIX_SPOTIFY_CLIENT_ID", "")
		t.Setenv("MOODMIX_LASTFM_API_KEY", "")

		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
		convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)

		mux := newMux(ctx, cfg, logger.Nop())
		do := func(method, path, body string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
			return w
		}

		convey.Convey("When the service routes are hit", func() {
			convey.Convey("Then health, docs and metrics respond", func() {
				convey.So(do(http.MethodGet, "/healthz", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(do(http.MethodGet, "/openapi.yaml", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(do(http.MethodGet, "/metrics", "").Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then curation uses the configured default size", func() {
				w := do(http.MethodPost, "/curate", `{
					"mood": {"primary_mood": "happy", "energy_level": 7, "emotional_intensity": 6},
					"candidates": [
						{"id": "1", "title": "Party Anthem", "artists": ["A"], "popularity": 80},
						{"id": "2", "title": "Sunny Day", "artists": ["B"], "popularity": 70},
						{"id": "3", "title": "Dance All Night", "artists": ["C"], "popularity": 60},
						{"id": "4", "title": "Good Times", "artists": ["D"], "popularity": 50}
					]
				}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"target_size":3`)
			})

			convey.Convey("Then recommend is unavailable without search credentials", func() {
				w := do(http.MethodPost, "/recommend", `{"mood":{"primary_mood":"calm","energy_level":2,"emotional_intensity":2}}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})

	convey.Convey("Given an invalid address", t, func() {
		t.Setenv("MOODMIX_CONFIG", "")
		t.Setenv("MOODMIX_ADDR", " ")

		convey.Convey("Then loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}
