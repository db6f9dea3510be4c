package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/moodmix/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMoodProfileValidate(t *testing.T) {
	Convey("Given mood profiles", t, func() {
		valid := model.MoodProfile{PrimaryMood: "  Happy ", EnergyLevel: 7, EmotionalIntensity: 5}

		Convey("A well formed profile passes and normalizes its category", func() {
			So(valid.Validate(), ShouldBeNil)
			So(valid.Category(), ShouldEqual, "happy")
		})

		Convey("An empty mood is rejected", func() {
			m := valid
			m.PrimaryMood = "   "
			err := m.Validate()
			So(errors.Is(err, model.ErrInvalidMood), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "primary mood")
		})

		Convey("Levels outside 1-10 are rejected", func() {
			low := valid
			low.EnergyLevel = 0
			So(errors.Is(low.Validate(), model.ErrInvalidMood), ShouldBeTrue)

			high := valid
			high.EmotionalIntensity = 11
			So(errors.Is(high.Validate(), model.ErrInvalidMood), ShouldBeTrue)
		})
	})
}

func TestAudioFeatures(t *testing.T) {
	Convey("Given audio features out of range", t, func() {
		f := model.AudioFeatures{
			Tempo:            250,
			Energy:           1.4,
			Valence:          -0.2,
			Danceability:     math.NaN(),
			Acousticness:     0.5,
			Instrumentalness: 2,
			Speechiness:      -1,
			Loudness:         3,
			Source:           model.SourceEstimated,
		}

		Convey("Clamp forces documented ranges and keeps the source", func() {
			c := f.Clamp()
			So(c.Tempo, ShouldEqual, model.MaxTempo)
			So(c.Energy, ShouldEqual, 1.0)
			So(c.Valence, ShouldEqual, 0.0)
			So(c.Danceability, ShouldEqual, 0.0)
			So(c.Acousticness, ShouldEqual, 0.5)
			So(c.Instrumentalness, ShouldEqual, 1.0)
			So(c.Speechiness, ShouldEqual, 0.0)
			So(c.Loudness, ShouldEqual, 0.0)
			So(c.Source, ShouldEqual, model.SourceEstimated)
		})

		Convey("NeutralFeatures is mid-range and estimated", func() {
			n := model.NeutralFeatures()
			So(n.Tempo, ShouldEqual, 100.0)
			So(n.Energy, ShouldEqual, 0.5)
			So(n.Source, ShouldEqual, model.SourceEstimated)
			So(n.Clamp(), ShouldResemble, n)
			So(n.Validate(), ShouldBeNil)
		})

		Convey("Validate names the first offending value", func() {
			err := f.Validate()
			So(errors.Is(err, model.ErrInvalidFeatures), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "energy")
			So(f.InRange(), ShouldBeFalse)
		})

		Convey("Normalize uses the measured tempo band and keeps the source", func() {
			measured := f
			measured.Source = model.SourceMeasured
			n := measured.Normalize()
			So(n.Tempo, ShouldEqual, model.MaxMeasuredTempo)
			So(n.Energy, ShouldEqual, 1.0)
			So(n.Danceability, ShouldEqual, 0.0)
			So(n.Loudness, ShouldEqual, 0.0)
			So(n.Source, ShouldEqual, model.SourceMeasured)
			So(n.Validate(), ShouldBeNil)

			slow := model.NeutralFeatures()
			slow.Tempo = 45
			So(slow.Normalize().Tempo, ShouldEqual, 45.0)
			So(slow.Validate(), ShouldBeNil)
			slow.Tempo = -40
			So(slow.Normalize().Tempo, ShouldEqual, model.MinMeasuredTempo)
			So(errors.Is(slow.Validate(), model.ErrInvalidFeatures), ShouldBeTrue)
		})
	})
}

func TestTrack(t *testing.T) {
	Convey("Given a track without features", t, func() {
		tr := model.Track{ID: "t1", Artists: []string{"A", "B"}}

		So(tr.HasFeatures(), ShouldBeFalse)
		So(tr.FeaturesOrNeutral(), ShouldResemble, model.NeutralFeatures())

		Convey("WithFeatures returns a copy", func() {
			f := model.AudioFeatures{Tempo: 120, Source: model.SourceMeasured}
			withF := tr.WithFeatures(f)
			So(withF.HasFeatures(), ShouldBeTrue)
			So(withF.HasMeasuredFeatures(), ShouldBeTrue)
			So(tr.HasFeatures(), ShouldBeFalse)

			f.Tempo = 90
			So(withF.Features.Tempo, ShouldEqual, 120.0)
		})
	})
}

func TestFeatureSourceOf(t *testing.T) {
	Convey("Given pools of tracks", t, func() {
		measured := model.Track{ID: "m"}.WithFeatures(model.AudioFeatures{Source: model.SourceMeasured})
		estimated := model.Track{ID: "e"}.WithFeatures(model.AudioFeatures{Source: model.SourceEstimated})
		bare := model.Track{ID: "b"}

		So(model.FeatureSourceOf(nil), ShouldEqual, model.SourceNone)
		So(model.FeatureSourceOf([]model.Track{bare}), ShouldEqual, model.SourceNone)
		So(model.FeatureSourceOf([]model.Track{measured, measured}), ShouldEqual, model.SourceMeasured)
		So(model.FeatureSourceOf([]model.Track{estimated}), ShouldEqual, model.SourceEstimated)
		So(model.FeatureSourceOf([]model.Track{measured, estimated}), ShouldEqual, model.SourceMixed)
		So(model.FeatureSourceOf([]model.Track{measured, bare}), ShouldEqual, model.SourceMixed)
	})

	Convey("UserContext history checks tolerate nil", t, func() {
		var u *model.UserContext
		So(u.HasRecentArtists(), ShouldBeFalse)
		So((&model.UserContext{RecentArtists: []string{"x"}}).HasRecentArtists(), ShouldBeTrue)
	})
}
