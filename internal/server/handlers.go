package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
)

// SearchHandler serves GET /api/search.
type SearchHandler struct {
	engine tasks.Engine
	logger *log.Logger
}

// NewSearchHandler creates a SearchHandler that dispatches through engine.
func NewSearchHandler(engine tasks.Engine, logger *log.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/api/search"}
}

// ServeHTTP runs the search named by the q parameter.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, shared.ErrEmptyQuery.Error())
		return
	}

	res := <-h.engine.Search(r.Context(), query, nil)
	if res.Err != nil {
		status := statusFor(res.Err)
		h.logger.Warn("search request failed", "query", query, "status", status, "error", res.Err)
		writeError(w, status, res.Err.Error())
		return
	}

	writeJSON(w, http.StatusOK, formatter.SearchResponse{Query: query, Artists: nonNil(res.Artists)})
}

// HealthHandler serves GET /health.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// NewRouter builds the API router with logging and panic recovery.
func NewRouter(engine tasks.Engine, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Handler(NewSearchHandler(engine, logger))
	router.Handle(http.MethodGet, "/health", HealthHandler())
	return router
}

// statusFor maps a search failure to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
