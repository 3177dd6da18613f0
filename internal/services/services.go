// package services defines the Spotify authentication and search clients
package services

import (
	"context"

	"github.com/desertthunder/artx/internal/models"
	"golang.org/x/oauth2"
)

// Service is the consumer-facing artist search used by the CLI, TUI, and HTTP server.
type Service interface {
	// SearchArtists returns the artists matching query, in the order the catalog returned them.
	SearchArtists(ctx context.Context, query string) ([]models.Artist, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}

// Authenticator obtains a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context) (*oauth2.Token, error)
}

// Searcher runs an artist search with an already obtained token.
type Searcher interface {
	SearchArtists(ctx context.Context, query string, token *oauth2.Token) ([]models.Artist, error)
}
