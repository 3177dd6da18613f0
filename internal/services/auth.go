package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/artx/internal/shared"
	"golang.org/x/oauth2"
)

// TokenURL is the Spotify accounts service token endpoint.
const TokenURL = "https://accounts.spotify.com/api/token"

// TokenAuthenticator exchanges client credentials for an application bearer token.
type TokenAuthenticator struct {
	creds      shared.Credentials
	tokenURL   string
	httpClient *http.Client
}

// NewTokenAuthenticator creates an authenticator for creds.
//
// An empty tokenURL selects [TokenURL]; a nil client selects [http.DefaultClient].
func NewTokenAuthenticator(creds shared.Credentials, tokenURL string, client *http.Client) (*TokenAuthenticator, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	if tokenURL == "" {
		tokenURL = TokenURL
	}

	return &TokenAuthenticator{
		creds:      creds,
		tokenURL:   tokenURL,
		httpClient: defaultClient(client),
	}, nil
}

// TokenURL returns the endpoint this authenticator posts to.
func (a *TokenAuthenticator) TokenURL() string {
	return a.tokenURL
}

// BuildTokenRequest describes the client-credentials token request for creds.
// Credentials travel in a Basic Authorization header, never the form body.
func BuildTokenRequest(creds shared.Credentials, tokenURL string) Request {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	basic := base64.StdEncoding.EncodeToString([]byte(creds.ClientID + ":" + creds.ClientSecret))

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Authorization", "Basic "+basic)

	return Request{
		Method: http.MethodPost,
		URL:    tokenURL,
		Header: header,
		Body:   form.Encode(),
	}
}

// Authenticate performs a single token request. Nothing is cached between calls.
func (a *TokenAuthenticator) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	resp, err := send(ctx, a.httpClient, BuildTokenRequest(a.creds, a.tokenURL))
	if err != nil {
		return nil, &AuthError{Kind: shared.ErrRequestFailed, Message: "token request could not be completed", Err: err}
	}

	if !resp.OK() {
		return nil, tokenStatusError(resp)
	}

	return ParseTokenResponse(resp.Body)
}

type tokenResponse struct {
	AccessToken *string `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
}

// ParseTokenResponse extracts the access token from a successful token response body.
//
// Only access_token is required. The expiry is deliberately not carried on the returned token.
func ParseTokenResponse(body []byte) (*oauth2.Token, error) {
	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &AuthError{Kind: shared.ErrMalformedResponse, Message: "token response is not valid JSON", Err: err}
	}

	if payload.AccessToken == nil {
		return nil, &AuthError{Kind: shared.ErrMalformedResponse, Message: "token response has no access_token"}
	}
	if *payload.AccessToken == "" {
		return nil, &AuthError{Kind: shared.ErrMalformedResponse, Message: "token response has an empty access_token"}
	}

	return &oauth2.Token{AccessToken: *payload.AccessToken, TokenType: payload.TokenType}, nil
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorURI         string `json:"error_uri"`
}

// tokenStatusError maps a non-2xx token response to an [AuthError] whose cause is an [oauth2.RetrieveError].
func tokenStatusError(resp *APIResponse) error {
	var payload tokenErrorResponse
	_ = json.Unmarshal(resp.Body, &payload)

	cause := &oauth2.RetrieveError{
		Response:         resp.raw,
		Body:             resp.Body,
		ErrorCode:        payload.Error,
		ErrorDescription: payload.ErrorDescription,
		ErrorURI:         payload.ErrorURI,
	}

	msg := fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)
	if payload.ErrorDescription != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.ErrorDescription)
	} else if payload.Error != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Error)
	}

	return &AuthError{Kind: shared.ErrRequestFailed, Message: msg, Err: cause}
}
