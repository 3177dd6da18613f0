package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	tu "github.com/desertthunder/artx/internal/testing"
	"golang.org/x/oauth2"
)

var testToken = &oauth2.Token{AccessToken: "abc123"}

func searchServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchClient(t *testing.T) {
	t.Run("NewSearchClient", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			c := NewSearchClient("", nil)
			if c.SearchURL() != SearchURL {
				t.Errorf("expected default search URL, got %s", c.SearchURL())
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("Custom", func(t *testing.T) {
			client := &http.Client{}
			c := NewSearchClient("http://example.com/search", client)
			if c.SearchURL() != "http://example.com/search" {
				t.Errorf("expected custom search URL, got %s", c.SearchURL())
			}
			if c.httpClient != client {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("BuildSearchRequest", func(t *testing.T) {
		t.Run("Fixed Parameters And Bearer Header", func(t *testing.T) {
			req, err := BuildSearchRequest(SearchURL, "Daft Punk", testToken)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if req.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", req.Method)
			}
			if req.Body != "" {
				t.Errorf("expected empty body, got %q", req.Body)
			}
			if got := req.Header.Get("Authorization"); got != "Bearer abc123" {
				t.Errorf("expected 'Bearer abc123', got %q", got)
			}

			u, err := url.Parse(req.URL)
			if err != nil {
				t.Fatalf("request URL does not parse: %v", err)
			}
			if u.Scheme+"://"+u.Host+u.Path != SearchURL {
				t.Errorf("unexpected endpoint %s", req.URL)
			}

			want := url.Values{
				"q":      {"Daft Punk"},
				"type":   {"artist"},
				"market": {"US"},
				"limit":  {"20"},
			}
			if !reflect.DeepEqual(u.Query(), want) {
				t.Errorf("expected params %v, got %v", want, u.Query())
			}
		})

		t.Run("Percent Encodes The Query", func(t *testing.T) {
			req, err := BuildSearchRequest(SearchURL, "Simon & Garfunkel #1", testToken)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if strings.Contains(req.URL, " ") || strings.Contains(req.URL, "#") {
				t.Errorf("expected query to be encoded, got %s", req.URL)
			}

			u, _ := url.Parse(req.URL)
			if u.Query().Get("q") != "Simon & Garfunkel #1" {
				t.Errorf("query did not survive encoding: %q", u.Query().Get("q"))
			}
			if u.Query().Get("type") != "artist" {
				t.Error("ampersand in query must not introduce extra parameters")
			}
		})

		t.Run("Authorization Is Always Bearer", func(t *testing.T) {
			for _, tokenType := range []string{"", "bearer", "Bearer", "mac", "basic", "MAC"} {
				req, err := BuildSearchRequest(SearchURL, "x", &oauth2.Token{AccessToken: "t", TokenType: tokenType})
				if err != nil {
					t.Fatalf("token type %q: expected no error, got %v", tokenType, err)
				}
				if got := req.Header.Get("Authorization"); got != "Bearer t" {
					t.Errorf("token type %q: expected 'Bearer t', got %q", tokenType, got)
				}
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			if _, err := BuildSearchRequest(SearchURL, "x", nil); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for nil token, got %v", err)
			}
			if _, err := BuildSearchRequest(SearchURL, "x", &oauth2.Token{}); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for empty token, got %v", err)
			}
		})

		t.Run("Invalid URL", func(t *testing.T) {
			if _, err := BuildSearchRequest("http://[::1", "x", testToken); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("ParseSearchResponse", func(t *testing.T) {
		t.Run("Preserves Order", func(t *testing.T) {
			body := `{"artists":{"items":[
				{"name":"A","images":[{"url":"http://img/a"}],"followers":{"total":3}},
				{"name":"B","images":[{"url":"http://img/b"},{"url":"http://img/b2"}],"followers":{"total":2}},
				{"name":"C","images":[{"url":"http://img/c"}],"followers":{"total":1}}
			]}}`

			artists, err := ParseSearchResponse([]byte(body))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []models.Artist{
				{Name: "A", ImageURL: "http://img/a", Followers: 3},
				{Name: "B", ImageURL: "http://img/b", Followers: 2},
				{Name: "C", ImageURL: "http://img/c", Followers: 1},
			}
			if !reflect.DeepEqual(artists, want) {
				t.Errorf("expected %+v, got %+v", want, artists)
			}
		})

		t.Run("Empty Items", func(t *testing.T) {
			artists, err := ParseSearchResponse([]byte(`{"artists":{"items":[]}}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if artists == nil || len(artists) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", artists)
			}
		})

		t.Run("Missing Or Empty Images", func(t *testing.T) {
			tests := []struct {
				name string
				item string
			}{
				{"empty array", `{"name":"X","images":[],"followers":{"total":5}}`},
				{"missing key", `{"name":"X","followers":{"total":5}}`},
				{"null", `{"name":"X","images":null,"followers":{"total":5}}`},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					artists, err := ParseSearchResponse([]byte(`{"artists":{"items":[` + tt.item + `]}}`))
					if err != nil {
						t.Fatalf("expected no error, got %v", err)
					}
					if artists[0].ImageURL != "" {
						t.Errorf("expected empty image URL, got %q", artists[0].ImageURL)
					}
				})
			}
		})

		t.Run("Ignores Unknown Fields", func(t *testing.T) {
			body := `{"artists":{"href":"x","total":1,"items":[{"id":"1","name":"X","genres":["pop"],"popularity":90,"followers":{"href":null,"total":7}}]}}`
			artists, err := ParseSearchResponse([]byte(body))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if artists[0].Followers != 7 {
				t.Errorf("expected 7 followers, got %d", artists[0].Followers)
			}
		})

		malformedBodies := []struct {
			name string
			body string
		}{
			{"Invalid JSON", `{"artists":`},
			{"Missing Artists", `{}`},
			{"Null Artists", `{"artists":null}`},
			{"Missing Items", `{"artists":{}}`},
			{"Items Wrong Type", `{"artists":{"items":{}}}`},
			{"Missing Name", `{"artists":{"items":[{"followers":{"total":1}}]}}`},
			{"Empty Name", `{"artists":{"items":[{"name":"","followers":{"total":1}}]}}`},
			{"Name Wrong Type", `{"artists":{"items":[{"name":1,"followers":{"total":1}}]}}`},
			{"Missing Followers", `{"artists":{"items":[{"name":"X"}]}}`},
			{"Missing Followers Total", `{"artists":{"items":[{"name":"X","followers":{}}]}}`},
			{"Fractional Followers", `{"artists":{"items":[{"name":"X","followers":{"total":1.5}}]}}`},
			{"Negative Followers", `{"artists":{"items":[{"name":"X","followers":{"total":-1}}]}}`},
			{"Image Without URL", `{"artists":{"items":[{"name":"X","images":[{}],"followers":{"total":1}}]}}`},
		}
		for _, tt := range malformedBodies {
			t.Run(tt.name, func(t *testing.T) {
				artists, err := ParseSearchResponse([]byte(tt.body))
				if artists != nil {
					t.Errorf("expected no partial results, got %+v", artists)
				}
				if !errors.Is(err, shared.ErrMalformedResponse) {
					t.Fatalf("expected ErrMalformedResponse, got %v", err)
				}
				var searchErr *SearchError
				if !errors.As(err, &searchErr) {
					t.Fatalf("expected *SearchError, got %T", err)
				}
			})
		}

		t.Run("One Bad Item Discards The Response", func(t *testing.T) {
			body := `{"artists":{"items":[
				{"name":"Good","followers":{"total":1}},
				{"name":"Bad"}
			]}}`
			artists, err := ParseSearchResponse([]byte(body))
			if err == nil || artists != nil {
				t.Fatalf("expected whole response to fail, got %+v, %v", artists, err)
			}
			if !strings.Contains(err.Error(), "item 1") {
				t.Errorf("expected failing item index in message, got %v", err)
			}
		})
	})

	t.Run("MarshalArtists Round Trip", func(t *testing.T) {
		tests := []struct {
			name    string
			artists []models.Artist
		}{
			{"empty", []models.Artist{}},
			{"with and without images", []models.Artist{
				{Name: "Daft Punk", ImageURL: "https://i.scdn.co/image/daft", Followers: 12345678},
				{Name: "No Image", Followers: 0},
				{Name: "Ünïcödé & \"quotes\"", ImageURL: "https://x/y?z=1&w=2", Followers: 42},
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				body, err := MarshalArtists(tt.artists)
				if err != nil {
					t.Fatalf("marshal failed: %v", err)
				}
				got, err := ParseSearchResponse(body)
				if err != nil {
					t.Fatalf("parse failed: %v", err)
				}
				if !reflect.DeepEqual(got, tt.artists) {
					t.Errorf("round trip mismatch: want %+v, got %+v", tt.artists, got)
				}
			})
		}

		t.Run("nil encodes as empty items", func(t *testing.T) {
			body, _ := MarshalArtists(nil)
			if string(body) != `{"artists":{"items":[]}}` {
				t.Errorf("unexpected body %s", body)
			}
		})
	})

	t.Run("SearchArtists", func(t *testing.T) {
		t.Run("Sends Bearer Token And Parses Items", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer abc123" {
					t.Errorf("expected bearer header, got %q", got)
				}
				if r.URL.Query().Get("q") != "Daft Punk" {
					t.Errorf("unexpected q %q", r.URL.Query().Get("q"))
				}
				io.WriteString(w, `{"artists":{"items":[{"name":"Daft Punk","images":[{"url":"https://i/daft"}],"followers":{"total":12345678}}]}}`)
			}))
			defer server.Close()

			artists, err := NewSearchClient(server.URL, nil).SearchArtists(context.Background(), "Daft Punk", testToken)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			want := []models.Artist{{Name: "Daft Punk", ImageURL: "https://i/daft", Followers: 12345678}}
			if !reflect.DeepEqual(artists, want) {
				t.Errorf("expected %+v, got %+v", want, artists)
			}
		})

		t.Run("Non-2xx", func(t *testing.T) {
			server := searchServer(t, http.StatusUnauthorized, `{"error":{"status":401,"message":"Invalid access token"}}`)

			_, err := NewSearchClient(server.URL, nil).SearchArtists(context.Background(), "x", testToken)
			if !errors.Is(err, shared.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "Invalid access token") {
				t.Errorf("expected status and API message, got %v", err)
			}
		})

		t.Run("Non-2xx With Non-JSON Body", func(t *testing.T) {
			server := searchServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

			_, err := NewSearchClient(server.URL, nil).SearchArtists(context.Background(), "x", testToken)
			if !errors.Is(err, shared.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
		})

		t.Run("Malformed 200", func(t *testing.T) {
			server := searchServer(t, http.StatusOK, `{"artists":{"items":[{"name":"X"}]}}`)

			_, err := NewSearchClient(server.URL, nil).SearchArtists(context.Background(), "x", testToken)
			if !errors.Is(err, shared.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})

		t.Run("Transport Error", func(t *testing.T) {
			client := tu.FailingClient(errors.New("connection reset"))

			_, err := NewSearchClient("http://example.com/search", client).SearchArtists(context.Background(), "x", testToken)
			if !errors.Is(err, shared.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
		})

		t.Run("Nil Token", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(nil, errors.New("unreachable"))
			client := &http.Client{Transport: rt}

			_, err := NewSearchClient("http://example.com/search", client).SearchArtists(context.Background(), "x", nil)
			if !errors.Is(err, shared.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
			if rt.Requests() != 0 {
				t.Errorf("expected no request without a token, got %d", rt.Requests())
			}
		})
	})
}
