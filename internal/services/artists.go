package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

// ArtistService implements [Service] by authenticating and then searching on every call.
type ArtistService struct {
	auth     Authenticator
	searcher Searcher
}

// NewArtistService composes an authenticator and a searcher.
func NewArtistService(auth Authenticator, searcher Searcher) *ArtistService {
	return &ArtistService{auth: auth, searcher: searcher}
}

// NewSpotifyService wires a [TokenAuthenticator] and [SearchClient] from configuration.
func NewSpotifyService(creds shared.Credentials, api shared.APIConfig, client *http.Client) (*ArtistService, error) {
	auth, err := NewTokenAuthenticator(creds, api.TokenURL, client)
	if err != nil {
		return nil, err
	}
	return NewArtistService(auth, NewSearchClient(api.SearchURL, client)), nil
}

// Name returns the service name
func (s *ArtistService) Name() string {
	return "Spotify"
}

// SearchArtists obtains a fresh token and searches for query.
//
// A blank query is rejected with [shared.ErrEmptyQuery] before any request is made.
func (s *ArtistService) SearchArtists(ctx context.Context, query string) ([]models.Artist, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrEmptyQuery
	}

	token, err := s.auth.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	return s.searcher.SearchArtists(ctx, query, token)
}
