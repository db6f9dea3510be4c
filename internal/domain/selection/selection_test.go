package selection_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/internal/domain/selection"
)

func scoredTrack(id, artist string, score float64, pop int, tempo, energy float64, index int) model.ScoredTrack {
	t := model.Track{ID: id, Title: id, Artists: []string{artist}, Popularity: pop}.
		WithFeatures(model.AudioFeatures{Tempo: tempo, Energy: energy, Source: model.SourceMeasured})
	return model.ScoredTrack{Track: t, Score: score, Index: index}
}

func artistCounts(p model.Playlist) map[string]int {
	counts := map[string]int{}
	for _, t := range p.Tracks {
		for _, a := range t.Artists {
			counts[strings.ToLower(a)]++
		}
	}
	return counts
}

func TestSelect_Contract(t *testing.T) {
	Convey("Given a selector", t, func() {
		s := selection.New()

		Convey("When the target is negative", func() {
			_, err := s.Select(nil, -1, 2)
			So(errors.Is(err, model.ErrInvalidTargetCount), ShouldBeTrue)
		})

		Convey("When the artist cap is negative", func() {
			_, err := s.Select(nil, 10, -1)
			So(errors.Is(err, model.ErrInvalidArtistCap), ShouldBeTrue)
		})

		Convey("When the pool is empty", func() {
			p, err := s.Select(nil, 10, 0)

			Convey("Then the playlist is empty with zero stats and a shortfall", func() {
				So(err, ShouldBeNil)
				So(p.Tracks, ShouldBeEmpty)
				So(p.Stats, ShouldResemble, model.DiversityStats{})
				So(p.Stats.Score, ShouldEqual, 0.0)
				So(p.Shortfall, ShouldEqual, 10)
				So(p.Relaxed, ShouldBeFalse)
				So(p.EffectiveArtistCap, ShouldEqual, selection.DefaultArtistCap)
			})
		})

		Convey("When the target exceeds the pool", func() {
			pool := []model.ScoredTrack{
				scoredTrack("a", "A", 90, 50, 100, 0.5, 0),
				scoredTrack("b", "B", 80, 50, 120, 0.6, 1),
				scoredTrack("c", "C", 70, 50, 140, 0.7, 2),
			}
			p, err := s.Select(pool, 10, 2)

			Convey("Then every track is returned once and the shortfall is flagged", func() {
				So(err, ShouldBeNil)
				So(len(p.Tracks), ShouldEqual, 3)
				So(p.Shortfall, ShouldEqual, 7)
				So(p.TargetSize, ShouldEqual, 10)
			})
		})

		Convey("When the pool repeats an ID", func() {
			pool := []model.ScoredTrack{
				scoredTrack("a", "A", 60, 50, 100, 0.5, 0),
				scoredTrack("a", "A", 90, 50, 100, 0.5, 1),
				scoredTrack("b", "B", 80, 50, 120, 0.6, 2),
			}
			p, err := s.Select(pool, 5, 2)

			Convey("Then the duplicate is dropped", func() {
				So(err, ShouldBeNil)
				So(len(p.Tracks), ShouldEqual, 2)
				ids := map[string]bool{}
				for _, tr := range p.Tracks {
					So(ids[tr.ID], ShouldBeFalse)
					ids[tr.ID] = true
				}
			})
		})

		Convey("When the target is zero", func() {
			pool := []model.ScoredTrack{scoredTrack("a", "A", 60, 50, 100, 0.5, 0)}
			p, err := s.Select(pool, 0, 2)
			So(err, ShouldBeNil)
			So(p.Tracks, ShouldBeEmpty)
			So(p.Shortfall, ShouldEqual, 0)
		})

		Convey("When the input slice is reused afterwards", func() {
			pool := []model.ScoredTrack{
				scoredTrack("low", "A", 10, 50, 100, 0.5, 0),
				scoredTrack("high", "B", 90, 50, 120, 0.6, 1),
			}
			_, err := s.Select(pool, 2, 2)
			So(err, ShouldBeNil)
			So(pool[0].ID, ShouldEqual, "low")
		})
	})
}

func TestSelect_ArtistCap(t *testing.T) {
	Convey("Given a pool with enough artists", t, func() {
		var pool []model.ScoredTrack
		for i := range 30 {
			artist := fmt.Sprintf("Artist%d", i%6)
			pool = append(pool, scoredTrack(fmt.Sprintf("t%02d", i), artist, float64(100-i), 50, 90+float64(i), 0.3+float64(i%5)*0.1, i))
		}

		p, err := selection.New().Select(pool, 12, 2)

		Convey("Then no artist exceeds the cap and no relaxation happens", func() {
			So(err, ShouldBeNil)
			So(len(p.Tracks), ShouldEqual, 12)
			So(p.Relaxed, ShouldBeFalse)
			So(p.EffectiveArtistCap, ShouldEqual, 2)
			for _, n := range artistCounts(p) {
				So(n, ShouldBeLessThanOrEqualTo, 2)
			}
		})
	})

	Convey("Given artist names that differ only by case", t, func() {
		pool := []model.ScoredTrack{
			scoredTrack("a", "Band", 90, 50, 100, 0.5, 0),
			scoredTrack("b", "BAND", 89, 50, 110, 0.5, 1),
			scoredTrack("c", "band", 88, 50, 120, 0.5, 2),
			scoredTrack("d", "Other", 10, 50, 130, 0.5, 3),
		}
		p, err := selection.New().Select(pool, 3, 2)

		Convey("Then they count as one artist", func() {
			So(err, ShouldBeNil)
			So(artistCounts(p)["band"], ShouldEqual, 2)
			So(artistCounts(p)["other"], ShouldEqual, 1)
		})
	})

	Convey("Given a collaboration track", t, func() {
		collab := model.ScoredTrack{
			Track: model.Track{ID: "ab", Artists: []string{"A", "B"}}.
				WithFeatures(model.AudioFeatures{Tempo: 100, Energy: 0.5}),
			Score: 95, Index: 0,
		}
		pool := []model.ScoredTrack{
			collab,
			scoredTrack("a1", "A", 90, 50, 100, 0.5, 1),
			scoredTrack("b1", "B", 85, 50, 100, 0.5, 2),
			scoredTrack("a2", "A", 80, 50, 100, 0.5, 3),
			scoredTrack("c1", "C", 70, 50, 100, 0.5, 4),
		}
		p, err := selection.New().Select(pool, 4, 2)

		Convey("Then every credited artist counts toward the cap", func() {
			So(err, ShouldBeNil)
			So(p.Relaxed, ShouldBeFalse)
			So(artistCounts(p)["a"], ShouldEqual, 2)
			ids := map[string]bool{}
			for _, tr := range p.Tracks {
				ids[tr.ID] = true
			}
			So(ids["a2"], ShouldBeFalse)
			So(ids["c1"], ShouldBeTrue)
		})
	})
}

func TestSelect_RelaxationScenario(t *testing.T) {
	Convey("Given 20 energetic tracks split between artists A and B", t, func() {
		var pool []model.ScoredTrack
		for i := range 20 {
			artist := "A"
			if i%2 == 1 {
				artist = "B"
			}
			pool = append(pool, scoredTrack(fmt.Sprintf("e%02d", i), artist, 80-float64(i), 60, 120+float64(i*2), 0.8, i))
		}

		p, err := selection.New().Select(pool, 10, 2)

		Convey("Then the cap is relaxed and the target is met", func() {
			So(err, ShouldBeNil)
			So(len(p.Tracks), ShouldEqual, 10)
			So(p.Relaxed, ShouldBeTrue)
			So(p.EffectiveArtistCap, ShouldBeGreaterThan, 2)
			So(p.Shortfall, ShouldEqual, 0)
			counts := artistCounts(p)
			So(counts["a"]+counts["b"], ShouldEqual, 10)
			So(counts["a"], ShouldBeLessThanOrEqualTo, p.EffectiveArtistCap)
			So(counts["b"], ShouldBeLessThanOrEqualTo, p.EffectiveArtistCap)
		})
	})

	Convey("Given a single-artist pool smaller than the target", t, func() {
		var pool []model.ScoredTrack
		for i := range 4 {
			pool = append(pool, scoredTrack(fmt.Sprintf("s%d", i), "Solo", 50, 50, 100, 0.5, i))
		}
		p, err := selection.New().Select(pool, 10, 1)

		Convey("Then relaxation exhausts the pool and reports the shortfall", func() {
			So(err, ShouldBeNil)
			So(len(p.Tracks), ShouldEqual, 4)
			So(p.Relaxed, ShouldBeTrue)
			So(p.Shortfall, ShouldEqual, 6)
		})
	})
}

func TestSelect_TempoTieBreak(t *testing.T) {
	Convey("Given near-tied candidates with different tempos", t, func() {
		pool := []model.ScoredTrack{
			scoredTrack("first", "A", 90, 50, 100, 0.5, 0),
			scoredTrack("close", "B", 89, 50, 102, 0.5, 1),
			scoredTrack("far", "C", 87, 50, 160, 0.5, 2),
			scoredTrack("outside", "D", 70, 50, 200, 0.5, 3),
		}

		Convey("Then the tempo outlier inside the tolerance wins the second slot", func() {
			p, err := selection.New().Select(pool, 2, 2)
			So(err, ShouldBeNil)
			ids := map[string]bool{}
			for _, tr := range p.Tracks {
				ids[tr.ID] = true
			}
			So(ids["first"], ShouldBeTrue)
			So(ids["far"], ShouldBeTrue)
		})

		Convey("Then a zero tolerance keeps strict rank order", func() {
			p, err := selection.New(selection.WithTieTolerance(0)).Select(pool, 2, 2)
			So(err, ShouldBeNil)
			ids := map[string]bool{}
			for _, tr := range p.Tracks {
				ids[tr.ID] = true
			}
			So(ids["close"], ShouldBeTrue)
		})
	})
}
