package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/internal/domain/model"
)

func TestCurateBatch(t *testing.T) {
	Convey("Given a curator with two workers", t, func() {
		c := newCurator(app.WithWorkerCount(2))
		cands := pool(25, func(i int) model.Track {
			return measured(fmt.Sprint(i), fmt.Sprint("artist-", i), float64(i%10)/10, 70+float64(i))
		})

		reqs := make([]app.Request, 6)
		for i := range reqs {
			reqs[i] = app.Request{Candidates: cands, Mood: calm, TargetCount: i + 1}
		}
		reqs[3].TargetCount = -4

		Convey("When the batch runs", func() {
			results := c.CurateBatch(context.Background(), reqs)

			Convey("Then results keep request order and errors stay per entry", func() {
				So(len(results), ShouldEqual, len(reqs))
				for i, r := range results {
					if i == 3 {
						So(errors.Is(r.Err, model.ErrInvalidTargetCount), ShouldBeTrue)
						continue
					}
					So(r.Err, ShouldBeNil)
					So(r.Result.Playlist.TargetSize, ShouldEqual, i+1)
					So(r.Result.Playlist.Len(), ShouldEqual, i+1)
				}
			})
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			results := c.CurateBatch(ctx, reqs)

			Convey("Then every entry reports the cancellation", func() {
				for _, r := range results {
					So(errors.Is(r.Err, context.Canceled), ShouldBeTrue)
				}
			})
		})

		Convey("When the batch is empty", func() {
			So(c.CurateBatch(context.Background(), nil), ShouldBeEmpty)
		})
	})
}
