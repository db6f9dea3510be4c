package lastfm

import (
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// Source is the part of the Last.fm API the provider reads.
type Source interface {
	TopArtists(user string, limit int) ([]string, error)
	TopTags(user string) ([]string, error)
	RecentArtists(user string, limit int) ([]string, error)
}

// apiSource reads from the Last.fm web API.
type apiSource struct {
	api *lastfm.Api
}

// NewSource returns a Source backed by the Last.fm web API.
func NewSource(apiKey, apiSecret string) Source {
	return &apiSource{api: lastfm.New(apiKey, apiSecret)}
}

func (s *apiSource) TopArtists(user string, limit int) ([]string, error) {
	res, err := s.api.User.GetTopArtists(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("get top artists: %w", err)
	}
	names := make([]string, 0, len(res.Artists))
	for _, a := range res.Artists {
		names = append(names, a.Name)
	}
	return names, nil
}

func (s *apiSource) TopTags(user string) ([]string, error) {
	res, err := s.api.User.GetTopTags(lastfm.P{"user": user})
	if err != nil {
		return nil, fmt.Errorf("get top tags: %w", err)
	}
	names := make([]string, 0, len(res.Tags))
	for _, t := range res.Tags {
		names = append(names, t.Name)
	}
	return names, nil
}

func (s *apiSource) RecentArtists(user string, limit int) ([]string, error) {
	res, err := s.api.User.GetRecentTracks(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("get recent tracks: %w", err)
	}
	names := make([]string, 0, len(res.Tracks))
	for _, t := range res.Tracks {
		names = append(names, t.Artist.Name)
	}
	return names, nil
}
