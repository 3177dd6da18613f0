// Request descriptions and the HTTP round trip shared by the token and search clients
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Request is a fully built description of an HTTP call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// HTTPRequest converts the description into an [http.Request] bound to ctx.
func (r Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.Body != "" {
		body = strings.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return req, nil
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
	raw        *http.Response
}

// OK reports whether the status code is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// send performs req with client and reads the full body.
//
// Only transport and read failures are errors here; status codes are left to the caller.
func send(ctx context.Context, client *http.Client, req Request) (*APIResponse, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       body,
		raw:        resp,
	}, nil
}

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		return http.DefaultClient
	}
	return client
}
