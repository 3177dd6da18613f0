package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Paths are matched by an [http.ServeMux]; each path then dispatches on method.
// Unknown paths and methods get JSON error bodies like every other API response.
type BasicRouter struct {
	mux         *http.ServeMux
	routes      map[string]*route
	middlewares []Middleware
}

// route holds the per-method handlers registered for one path.
type route struct {
	methods map[string]http.Handler
}

func (rt *route) allowed() string {
	methods := make([]string, 0, len(rt.methods))
	for m := range rt.methods {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return strings.Join(methods, ", ")
}

func (rt *route) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := rt.methods[strings.ToUpper(req.Method)]
	if !ok {
		w.Header().Set("Allow", rt.allowed())
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.ServeHTTP(w, req)
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:    http.NewServeMux(),
		routes: map[string]*route{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
//
// Only routes registered after the call are wrapped.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path. Several methods may share a path.
//
// Method dispatch happens inside the middleware stack, so rejected methods are logged too.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	rt, ok := r.routes[path]
	if !ok {
		rt = &route{methods: map[string]http.Handler{}}
		r.routes[path] = rt
		r.mux.Handle(path, r.Apply(rt))
	}
	rt.methods[strings.ToUpper(method)] = handler
}

// Handler registers a custom Handler implementation for every method.
//
// All routes returned by [Handler.Routes] are registered with this handler.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, path := range handler.Routes() {
		r.mux.Handle(path, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.Apply(http.HandlerFunc(notFound)).ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// The first middleware added is the outermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

func notFound(w http.ResponseWriter, req *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
