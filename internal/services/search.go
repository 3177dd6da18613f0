package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"golang.org/x/oauth2"
)

// SearchURL is the Spotify Web API search endpoint.
const SearchURL = "https://api.spotify.com/v1/search"

const (
	searchType   = "artist"
	searchMarket = "US"
	searchLimit  = 20
)

// SearchClient runs artist searches against the Web API with a caller-supplied token.
type SearchClient struct {
	searchURL  string
	httpClient *http.Client
}

// NewSearchClient creates a search client.
//
// An empty searchURL selects [SearchURL]; a nil client selects [http.DefaultClient].
func NewSearchClient(searchURL string, client *http.Client) *SearchClient {
	if searchURL == "" {
		searchURL = SearchURL
	}
	return &SearchClient{searchURL: searchURL, httpClient: defaultClient(client)}
}

// SearchURL returns the endpoint this client queries.
func (c *SearchClient) SearchURL() string {
	return c.searchURL
}

// BuildSearchRequest describes the artist search for query authorized with token.
//
// The query is percent-encoded along with the fixed type, market, and limit parameters.
// The Authorization scheme is always Bearer whatever token_type the accounts service reported.
func BuildSearchRequest(searchURL, query string, token *oauth2.Token) (Request, error) {
	if token == nil || token.AccessToken == "" {
		return Request{}, fmt.Errorf("%w: access token is required", shared.ErrInvalidArgument)
	}

	u, err := url.Parse(searchURL)
	if err != nil {
		return Request{}, fmt.Errorf("%w: invalid search URL %q: %v", shared.ErrInvalidArgument, searchURL, err)
	}

	params := u.Query()
	params.Set("q", query)
	params.Set("type", searchType)
	params.Set("market", searchMarket)
	params.Set("limit", strconv.Itoa(searchLimit))
	u.RawQuery = params.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token.AccessToken)
	header.Set("Accept", "application/json")

	return Request{Method: http.MethodGet, URL: u.String(), Header: header}, nil
}

// SearchArtists performs one search request and parses the artists it returns.
func (c *SearchClient) SearchArtists(ctx context.Context, query string, token *oauth2.Token) ([]models.Artist, error) {
	req, err := BuildSearchRequest(c.searchURL, query, token)
	if err != nil {
		return nil, &SearchError{Kind: shared.ErrRequestFailed, Message: "could not build search request", Err: err}
	}

	resp, err := send(ctx, c.httpClient, req)
	if err != nil {
		return nil, &SearchError{Kind: shared.ErrRequestFailed, Message: "search request could not be completed", Err: err}
	}

	if !resp.OK() {
		return nil, searchStatusError(resp)
	}

	return ParseSearchResponse(resp.Body)
}

// Pointer fields distinguish a missing key from a zero value.
type searchResponse struct {
	Artists *struct {
		Items *[]searchItem `json:"items"`
	} `json:"artists"`
}

type searchItem struct {
	Name   *string `json:"name"`
	Images []struct {
		URL *string `json:"url"`
	} `json:"images"`
	Followers *struct {
		Total *int `json:"total"`
	} `json:"followers"`
}

// ParseSearchResponse decodes a search response body into artists, preserving order.
//
// A missing artists.items, name, or followers.total fails the whole response.
// Missing or empty images yield an empty ImageURL.
func ParseSearchResponse(body []byte) ([]models.Artist, error) {
	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, malformed("search response is not valid JSON", err)
	}

	if payload.Artists == nil {
		return nil, malformed("search response has no artists object", nil)
	}
	if payload.Artists.Items == nil {
		return nil, malformed("search response has no artists.items array", nil)
	}

	items := *payload.Artists.Items
	artists := make([]models.Artist, 0, len(items))
	for i, item := range items {
		artist, err := item.artist()
		if err != nil {
			return nil, malformed(fmt.Sprintf("item %d: %v", i, err), nil)
		}
		artists = append(artists, artist)
	}

	return artists, nil
}

func (it searchItem) artist() (models.Artist, error) {
	if it.Name == nil {
		return models.Artist{}, fmt.Errorf("missing name")
	}
	if it.Followers == nil || it.Followers.Total == nil {
		return models.Artist{}, fmt.Errorf("missing followers.total")
	}

	var imageURL string
	if len(it.Images) > 0 {
		if it.Images[0].URL == nil {
			return models.Artist{}, fmt.Errorf("images[0] has no url")
		}
		imageURL = *it.Images[0].URL
	}

	return models.NewArtist(*it.Name, imageURL, *it.Followers.Total)
}

// MarshalArtists encodes artists as a search response body that [ParseSearchResponse] accepts.
func MarshalArtists(artists []models.Artist) ([]byte, error) {
	if artists == nil {
		artists = []models.Artist{}
	}

	payload := struct {
		Artists struct {
			Items []models.Artist `json:"items"`
		} `json:"artists"`
	}{}
	payload.Artists.Items = artists

	return json.Marshal(payload)
}

type apiErrorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func searchStatusError(resp *APIResponse) error {
	msg := fmt.Sprintf("search endpoint returned status %d", resp.StatusCode)

	var payload apiErrorResponse
	if err := json.Unmarshal(resp.Body, &payload); err == nil && payload.Error.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Error.Message)
	}

	return &SearchError{Kind: shared.ErrRequestFailed, Message: msg}
}

func malformed(msg string, err error) error {
	return &SearchError{Kind: shared.ErrMalformedResponse, Message: msg, Err: err}
}
