// package testing holds doubles and assertions shared by the package tests
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/artx/internal/models"
)

// MockService is a test double for [services.Service].
//
// It records every query it receives and returns Artists or Err.
type MockService struct {
	Artists []models.Artist
	Err     error

	mu      sync.Mutex
	queries []string
}

func (m *MockService) SearchArtists(ctx context.Context, query string) ([]models.Artist, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Artists, nil
}

func (m *MockService) Name() string { return "mock" }

// Queries returns the queries received so far.
func (m *MockService) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// SampleArtists returns a small fixed result set.
func SampleArtists() []models.Artist {
	return []models.Artist{
		{Name: "Daft Punk", ImageURL: "https://i.scdn.co/image/daft-punk", Followers: 12345678},
		{Name: "Daft Punk Tribute", ImageURL: "", Followers: 1200},
		{Name: "Thomas Bangalter", ImageURL: "https://i.scdn.co/image/bangalter", Followers: 98765},
	}
}

var errWrite = errors.New("write failed")

// FWriter rejects every write.
type FWriter struct{}

func (f *FWriter) Write(p []byte) (int, error) { return 0, errWrite }

// LimitedWriter forwards to target until maxWrites calls have succeeded.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

// FailOnWriter fails only the FailOn-th write (1-based) and forwards every other write to Target.
type FailOnWriter struct {
	FailOn int
	Target io.Writer

	calls int
}

func (f *FailOnWriter) Write(p []byte) (int, error) {
	f.calls++
	if f.calls == f.FailOn {
		return 0, errWrite
	}
	return f.Target.Write(p)
}

// MockRoundTripper answers every request with a canned response or error.
type MockRoundTripper struct {
	response *http.Response
	err      error

	mu       sync.Mutex
	requests int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests++
	m.mu.Unlock()
	return m.response, m.err
}

// Requests reports how many round trips were attempted.
func (m *MockRoundTripper) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// FailingClient returns an HTTP client whose transport always fails with err.
func FailingClient(err error) *http.Client {
	return &http.Client{Transport: NewMockRoundTripper(nil, err)}
}

// FCloser is a response body whose reads fail.
type FCloser struct{}

func (f *FCloser) Read(p []byte) (int, error) { return 0, errors.New("read failed") }
func (f *FCloser) Close() error               { return nil }

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileExists fails the test when nothing exists at path.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %s to exist", path)
	}
}

// AssertDirExists fails the test unless path is a directory.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	switch {
	case err != nil:
		t.Errorf("expected directory %s: %v", path, err)
	case !info.IsDir():
		t.Errorf("%s is not a directory", path)
	}
}
