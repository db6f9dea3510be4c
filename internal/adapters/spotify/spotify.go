// Package spotify finds candidate tracks for a mood through the Spotify Web
// API.
package spotify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

const (
	defaultMarket     = "US"
	defaultPoolSize   = 100
	defaultQueryLimit = 20
	maxQueryLimit     = 50
	featureBatchSize  = 100
)

// API is the part of *spotify.Client the searcher uses.
type API interface {
	Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error)
	GetAudioFeatures(ctx context.Context, ids ...spotify.ID) ([]*spotify.AudioFeatures, error)
}

// NewClient returns a client authenticated with the client-credentials flow.
func NewClient(ctx context.Context, clientID, clientSecret string) *spotify.Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return spotify.New(cfg.Client(ctx))
}

// Searcher turns a mood into a candidate pool.
type Searcher struct {
	api        API
	market     string
	poolSize   int
	queryLimit int
	logger     logger.Logger
}

// New creates a Searcher over api.
func New(api API, opts ...Option) *Searcher {
	s := &Searcher{
		api:        api,
		market:     defaultMarket,
		poolSize:   defaultPoolSize,
		queryLimit: defaultQueryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("spotify")
	return s
}

// Search runs the mood's queries, dedupes tracks by ID, stops at the pool
// size and orders the pool by popularity. Failed queries are skipped; only
// a search where every query fails is an error. Audio features are attached
// when the API returns them.
func (s *Searcher) Search(ctx context.Context, mood model.MoodProfile) ([]model.Track, error) {
	queries := Queries(mood)

	var (
		tracks  []model.Track
		seen    = make(map[spotify.ID]struct{})
		lastErr error
		failed  int
	)
	for _, q := range queries {
		if len(tracks) >= s.poolSize {
			break
		}
		res, err := s.api.Search(ctx, q, spotify.SearchTypeTrack,
			spotify.Limit(s.queryLimit),
			spotify.Market(s.market),
		)
		if err != nil {
			failed++
			lastErr = fmt.Errorf("spotify: search %q: %w", q, err)
			metrics.RecordCollaboratorError("search")
			s.logger.Warn(ctx, "search query failed", logger.String("query", q), logger.Error(err))
			continue
		}
		if res == nil || res.Tracks == nil {
			continue
		}
		for _, ft := range res.Tracks.Tracks {
			if _, ok := seen[ft.ID]; ok || ft.ID == "" {
				continue
			}
			seen[ft.ID] = struct{}{}
			tracks = append(tracks, convertTrack(ft))
			if len(tracks) >= s.poolSize {
				break
			}
		}
	}
	if failed == len(queries) {
		return nil, fmt.Errorf("%w: %w", ErrNoResults, lastErr)
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Popularity > tracks[j].Popularity
	})
	s.attachFeatures(ctx, tracks)

	s.logger.Debug(ctx, "search finished",
		logger.Int("queries", len(queries)),
		logger.Int("failed", failed),
		logger.Int("tracks", len(tracks)),
	)
	return tracks, nil
}

// attachFeatures fetches measured features in batches. A failing batch is
// logged and its tracks stay without features.
func (s *Searcher) attachFeatures(ctx context.Context, tracks []model.Track) {
	for start := 0; start < len(tracks); start += featureBatchSize {
		end := min(start+featureBatchSize, len(tracks))
		ids := make([]spotify.ID, 0, end-start)
		for _, t := range tracks[start:end] {
			ids = append(ids, spotify.ID(t.ID))
		}

		features, err := s.api.GetAudioFeatures(ctx, ids...)
		if err != nil {
			metrics.RecordCollaboratorError("features")
			s.logger.Warn(ctx, "audio features unavailable", logger.Int("tracks", len(ids)), logger.Error(err))
			continue
		}

		byID := make(map[spotify.ID]*spotify.AudioFeatures, len(features))
		for _, f := range features {
			if f != nil {
				byID[f.ID] = f
			}
		}
		for i := start; i < end; i++ {
			if f, ok := byID[spotify.ID(tracks[i].ID)]; ok {
				tracks[i] = tracks[i].WithFeatures(convertFeatures(f))
			}
		}
	}
}

func convertTrack(ft spotify.FullTrack) model.Track {
	artists := make([]string, 0, len(ft.Artists))
	for _, a := range ft.Artists {
		artists = append(artists, a.Name)
	}
	t := model.Track{
		ID:          string(ft.ID),
		Title:       ft.Name,
		Artists:     artists,
		Album:       ft.Album.Name,
		Popularity:  int(ft.Popularity),
		Duration:    time.Duration(int(ft.Duration)) * time.Millisecond,
		Explicit:    ft.Explicit,
		PreviewURL:  ft.PreviewURL,
		ExternalURL: ft.ExternalURLs["spotify"],
	}
	if len(ft.Album.Images) > 0 {
		t.ImageURL = ft.Album.Images[0].URL
	}
	return t
}

func convertFeatures(f *spotify.AudioFeatures) model.AudioFeatures {
	return model.AudioFeatures{
		Tempo:            float64(f.Tempo),
		Energy:           float64(f.Energy),
		Valence:          float64(f.Valence),
		Danceability:     float64(f.Danceability),
		Acousticness:     float64(f.Acousticness),
		Instrumentalness: float64(f.Instrumentalness),
		Speechiness:      float64(f.Speechiness),
		Loudness:         float64(f.Loudness),
		Source:           model.SourceMeasured,
	}
}
