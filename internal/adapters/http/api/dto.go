package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/moodmix/internal/app"
	"github.com/okian/moodmix/internal/domain/model"
)

// moodDTO mirrors the MoodProfile schema.
type moodDTO struct {
	PrimaryMood        string   `json:"primary_mood"`
	EnergyLevel        int      `json:"energy_level"`
	EmotionalIntensity int      `json:"emotional_intensity"`
	Context            string   `json:"context,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

func (m moodDTO) model() model.MoodProfile {
	return model.MoodProfile{
		PrimaryMood:        m.PrimaryMood,
		EnergyLevel:        m.EnergyLevel,
		EmotionalIntensity: m.EmotionalIntensity,
		Context:            m.Context,
		Tags:               m.Tags,
	}
}

type featuresDTO struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Speechiness      float64 `json:"speechiness"`
	Loudness         float64 `json:"loudness"`
	Source           string  `json:"source,omitempty"`
}

type trackDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Artists     []string     `json:"artists"`
	Album       string       `json:"album,omitempty"`
	Popularity  int          `json:"popularity"`
	DurationMs  int64        `json:"duration_ms,omitempty"`
	Explicit    bool         `json:"explicit"`
	Genres      []string     `json:"genres,omitempty"`
	Features    *featuresDTO `json:"features,omitempty"`
	PreviewURL  string       `json:"preview_url,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	ExternalURL string       `json:"external_url,omitempty"`
}

// model converts the DTO. Features without a source are taken as measured;
// only measured and estimated are accepted on input, and values must sit
// inside the measured ranges.
func (t trackDTO) model() (model.Track, error) {
	tr := model.Track{
		ID:          t.ID,
		Title:       t.Title,
		Artists:     t.Artists,
		Album:       t.Album,
		Popularity:  t.Popularity,
		Duration:    time.Duration(t.DurationMs) * time.Millisecond,
		Explicit:    t.Explicit,
		Genres:      t.Genres,
		PreviewURL:  t.PreviewURL,
		ImageURL:    t.ImageURL,
		ExternalURL: t.ExternalURL,
	}
	if t.ID == "" {
		return tr, errors.New("track without id")
	}
	if t.Features != nil {
		src := model.FeatureSource(t.Features.Source)
		switch src {
		case "":
			src = model.SourceMeasured
		case model.SourceMeasured, model.SourceEstimated:
		default:
			return tr, fmt.Errorf("track %s: unknown feature source %q", t.ID, t.Features.Source)
		}
		tr.Features = &model.AudioFeatures{
			Tempo:            t.Features.Tempo,
			Energy:           t.Features.Energy,
			Valence:          t.Features.Valence,
			Danceability:     t.Features.Danceability,
			Acousticness:     t.Features.Acousticness,
			Instrumentalness: t.Features.Instrumentalness,
			Speechiness:      t.Features.Speechiness,
			Loudness:         t.Features.Loudness,
			Source:           src,
		}
		if err := tr.Features.Validate(); err != nil {
			return tr, fmt.Errorf("track %s: %w", t.ID, err)
		}
	}
	return tr, nil
}

func newTrackDTO(t model.Track) trackDTO {
	dto := trackDTO{
		ID:          t.ID,
		Title:       t.Title,
		Artists:     t.Artists,
		Album:       t.Album,
		Popularity:  t.Popularity,
		DurationMs:  t.Duration.Milliseconds(),
		Explicit:    t.Explicit,
		Genres:      t.Genres,
		PreviewURL:  t.PreviewURL,
		ImageURL:    t.ImageURL,
		ExternalURL: t.ExternalURL,
	}
	if f := t.Features; f != nil {
		dto.Features = &featuresDTO{
			Tempo:            f.Tempo,
			Energy:           f.Energy,
			Valence:          f.Valence,
			Danceability:     f.Danceability,
			Acousticness:     f.Acousticness,
			Instrumentalness: f.Instrumentalness,
			Speechiness:      f.Speechiness,
			Loudness:         f.Loudness,
			Source:           string(f.Source),
		}
	}
	return dto
}

type userDTO struct {
	UserID          string   `json:"user_id"`
	FavoriteArtists []string `json:"favorite_artists,omitempty"`
	FavoriteGenres  []string `json:"favorite_genres,omitempty"`
	RecentArtists   []string `json:"recent_artists,omitempty"`
	AverageEnergy   *float64 `json:"average_energy,omitempty"`
}

func (u *userDTO) model() *model.UserContext {
	if u == nil {
		return nil
	}
	return &model.UserContext{
		UserID:          u.UserID,
		FavoriteArtists: u.FavoriteArtists,
		FavoriteGenres:  u.FavoriteGenres,
		RecentArtists:   u.RecentArtists,
		AverageEnergy:   u.AverageEnergy,
	}
}

// curateRequest mirrors the OpenAPI schema for POST /curate.
type curateRequest struct {
	Candidates  []trackDTO `json:"candidates"`
	Mood        moodDTO    `json:"mood"`
	User        *userDTO   `json:"user,omitempty"`
	TargetCount int        `json:"target_count"`
	ArtistCap   int        `json:"artist_cap"`
}

func (r curateRequest) model() (app.Request, error) {
	tracks := make([]model.Track, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		t, err := c.model()
		if err != nil {
			return app.Request{}, err
		}
		tracks = append(tracks, t)
	}
	return app.Request{
		Candidates:  tracks,
		Mood:        r.Mood.model(),
		User:        r.User.model(),
		TargetCount: r.TargetCount,
		ArtistCap:   r.ArtistCap,
	}, nil
}

type batchRequest struct {
	Requests []curateRequest `json:"requests"`
}

// recommendRequest mirrors the OpenAPI schema for POST /recommend.
type recommendRequest struct {
	Mood        moodDTO `json:"mood"`
	UserID      string  `json:"user_id,omitempty"`
	TargetCount int     `json:"target_count"`
	ArtistCap   int     `json:"artist_cap"`
}

type statsDTO struct {
	UniqueArtists int     `json:"unique_artists"`
	TempoMean     float64 `json:"tempo_mean"`
	TempoStdDev   float64 `json:"tempo_std_dev"`
	EnergyMean    float64 `json:"energy_mean"`
	EnergyStdDev  float64 `json:"energy_std_dev"`
	Score         float64 `json:"score"`
}

type curateResponse struct {
	ID                     string     `json:"id"`
	Tracks                 []trackDTO `json:"tracks"`
	TargetSize             int        `json:"target_size"`
	Stats                  statsDTO   `json:"stats"`
	Explanation            string     `json:"explanation"`
	FeatureSource          string     `json:"feature_source"`
	FeatureDataUnavailable bool       `json:"feature_data_unavailable"`
	EstimatedCount         int        `json:"estimated_count"`
	Relaxed                bool       `json:"relaxed"`
	EffectiveArtistCap     int        `json:"effective_artist_cap"`
	Shortfall              int        `json:"shortfall"`
	ElapsedMs              float64    `json:"elapsed_ms"`
}

func newCurateResponse(res app.Result) curateResponse {
	tracks := make([]trackDTO, len(res.Playlist.Tracks))
	for i, t := range res.Playlist.Tracks {
		tracks[i] = newTrackDTO(t)
	}
	s := res.Stats
	return curateResponse{
		ID:         res.ID,
		Tracks:     tracks,
		TargetSize: res.Playlist.TargetSize,
		Stats: statsDTO{
			UniqueArtists: s.UniqueArtists,
			TempoMean:     s.TempoMean,
			TempoStdDev:   s.TempoStdDev,
			EnergyMean:    s.EnergyMean,
			EnergyStdDev:  s.EnergyStdDev,
			Score:         s.Score,
		},
		Explanation:            res.Explanation,
		FeatureSource:          string(res.FeatureSource),
		FeatureDataUnavailable: res.FeatureDataUnavailable,
		EstimatedCount:         res.EstimatedCount,
		Relaxed:                res.Relaxed,
		EffectiveArtistCap:     res.Playlist.EffectiveArtistCap,
		Shortfall:              res.Shortfall,
		ElapsedMs:              float64(res.Elapsed.Microseconds()) / 1000,
	}
}

type batchItem struct {
	Result *curateResponse `json:"result,omitempty"`
	Error  *errorResponse  `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	Search bool   `json:"search"`
}
