package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"golang.org/x/oauth2"
)

type stubAuthenticator struct {
	token *oauth2.Token
	err   error
	calls int
}

func (s *stubAuthenticator) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	s.calls++
	return s.token, s.err
}

type stubSearcher struct {
	artists []models.Artist
	err     error
	query   string
	token   *oauth2.Token
	calls   int
}

func (s *stubSearcher) SearchArtists(ctx context.Context, query string, token *oauth2.Token) ([]models.Artist, error) {
	s.calls++
	s.query = query
	s.token = token
	return s.artists, s.err
}

// spotifyStub serves both endpoints from one server: /api/token and /v1/search.
func spotifyStub(t *testing.T, tokenBody string, searchStatus int, searchBody string) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		io.WriteString(w, tokenBody)
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":{"status":401,"message":"No token provided"}}`)
			return
		}
		w.WriteHeader(searchStatus)
		io.WriteString(w, searchBody)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func TestArtistService(t *testing.T) {
	t.Run("Service Interface", func(t *testing.T) {
		var _ Service = &ArtistService{}
		if (&ArtistService{}).Name() != "Spotify" {
			t.Error("expected service name 'Spotify'")
		}
	})

	t.Run("Rejects Blank Query Without Network", func(t *testing.T) {
		for _, q := range []string{"", " ", "\t\n "} {
			auth := &stubAuthenticator{token: testToken}
			search := &stubSearcher{}
			svc := NewArtistService(auth, search)

			_, err := svc.SearchArtists(context.Background(), q)
			if !errors.Is(err, shared.ErrEmptyQuery) {
				t.Errorf("expected ErrEmptyQuery for %q, got %v", q, err)
			}
			if auth.calls != 0 || search.calls != 0 {
				t.Errorf("expected no calls for %q", q)
			}
		}

		if shared.ErrEmptyQuery.Error() != "please enter an artist name" {
			t.Errorf("unexpected message %q", shared.ErrEmptyQuery.Error())
		}
	})

	t.Run("Threads Token Into Search", func(t *testing.T) {
		want := []models.Artist{{Name: "A", Followers: 1}}
		auth := &stubAuthenticator{token: testToken}
		search := &stubSearcher{artists: want}

		got, err := NewArtistService(auth, search).SearchArtists(context.Background(), "  A  ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if search.token != testToken {
			t.Error("expected the authenticated token to be passed to search")
		}
		if search.query != "A" {
			t.Errorf("expected trimmed query, got %q", search.query)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("Auth Failure Skips Search", func(t *testing.T) {
		authErr := &AuthError{Kind: shared.ErrRequestFailed, Message: "boom"}
		auth := &stubAuthenticator{err: authErr}
		search := &stubSearcher{}

		_, err := NewArtistService(auth, search).SearchArtists(context.Background(), "x")
		if !errors.Is(err, shared.ErrRequestFailed) {
			t.Fatalf("expected auth failure, got %v", err)
		}
		if search.calls != 0 {
			t.Error("search must not run after auth failure")
		}
	})

	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("Invalid Credentials", func(t *testing.T) {
			_, err := NewSpotifyService(shared.Credentials{}, shared.APIConfig{}, nil)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Daft Punk End To End", func(t *testing.T) {
			server, tokenCalls := spotifyStub(t,
				`{"access_token":"abc123","token_type":"Bearer","expires_in":3600}`,
				http.StatusOK,
				`{"artists":{"items":[{"name":"Daft Punk","images":[{"url":"https://i.scdn.co/image/daft"}],"followers":{"total":12345678}}]}}`,
			)

			svc, err := NewSpotifyService(testCreds, shared.APIConfig{
				TokenURL:  server.URL + "/api/token",
				SearchURL: server.URL + "/v1/search",
			}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			artists, err := svc.SearchArtists(context.Background(), "Daft Punk")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []models.Artist{{Name: "Daft Punk", ImageURL: "https://i.scdn.co/image/daft", Followers: 12345678}}
			if !reflect.DeepEqual(artists, want) {
				t.Errorf("expected %+v, got %+v", want, artists)
			}

			if _, err := svc.SearchArtists(context.Background(), "Daft Punk"); err != nil {
				t.Fatalf("second search failed: %v", err)
			}
			if *tokenCalls != 2 {
				t.Errorf("expected a fresh token per search, got %d token requests", *tokenCalls)
			}
		})

		t.Run("Malformed Token Stops Before Search", func(t *testing.T) {
			server, _ := spotifyStub(t, `{"token_type":"Bearer"}`, http.StatusOK, `{"artists":{"items":[]}}`)

			svc, _ := NewSpotifyService(testCreds, shared.APIConfig{
				TokenURL:  server.URL + "/api/token",
				SearchURL: server.URL + "/v1/search",
			}, nil)

			_, err := svc.SearchArtists(context.Background(), "x")
			var authErr *AuthError
			if !errors.As(err, &authErr) || !errors.Is(err, shared.ErrMalformedResponse) {
				t.Fatalf("expected malformed AuthError, got %v", err)
			}
		})

		t.Run("Search Failure Is A SearchError", func(t *testing.T) {
			server, _ := spotifyStub(t, `{"access_token":"abc123"}`, http.StatusServiceUnavailable, `{}`)

			svc, _ := NewSpotifyService(testCreds, shared.APIConfig{
				TokenURL:  server.URL + "/api/token",
				SearchURL: server.URL + "/v1/search",
			}, nil)

			_, err := svc.SearchArtists(context.Background(), "x")
			var searchErr *SearchError
			if !errors.As(err, &searchErr) {
				t.Fatalf("expected *SearchError, got %T: %v", err, err)
			}
			if !IsRequestFailed(err) || IsMalformed(err) {
				t.Errorf("expected request failure kind, got %v", err)
			}
			if !strings.Contains(err.Error(), "503") {
				t.Errorf("expected status in message, got %v", err)
			}
		})
	})
}

func TestErrors(t *testing.T) {
	t.Run("Error Strings", func(t *testing.T) {
		tests := []struct {
			err  error
			want string
		}{
			{&AuthError{Kind: shared.ErrMalformedResponse, Message: "no token"}, "spotify auth: " + shared.ErrMalformedResponse.Error() + ": no token"},
			{&SearchError{Kind: shared.ErrRequestFailed}, "spotify search: " + shared.ErrRequestFailed.Error()},
			{&SearchError{Message: "x"}, "spotify search: " + shared.ErrRequestFailed.Error() + ": x"},
		}
		for _, tt := range tests {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		}
	})

	t.Run("Unwrap Includes Cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := &SearchError{Kind: shared.ErrMalformedResponse, Err: cause}
		if !errors.Is(err, cause) || !errors.Is(err, shared.ErrMalformedResponse) {
			t.Error("expected both kind and cause to match")
		}
		if len(err.Unwrap()) != 2 {
			t.Errorf("expected 2 wrapped errors, got %d", len(err.Unwrap()))
		}
		if len((&AuthError{}).Unwrap()) != 0 {
			t.Error("expected nil entries to be dropped")
		}
	})
}
