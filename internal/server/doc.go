// Package server exposes the artist search over a small JSON HTTP API.
//
// # Router Infrastructure
//
// [BasicRouter] matches paths with an [http.ServeMux] and then dispatches on method. An unknown path gets a
// JSON 404; a known path with the wrong method gets a JSON 405 and an Allow header listing the registered methods.
//
// [Middleware] added first runs outermost. [NewRouter] installs Recover then Logging, so a handler panic is answered
// with a JSON 500 before it can unwind past the server.
//
// # Endpoints
//
//   - GET /api/search?q=... : 200 with {"query", "artists"}; 400 for a blank q; 502 when auth or search fails;
//     503 when the service is not configured; 504 on timeout
//   - GET /health : 200 with {"status":"ok"}
//
// Errors are always JSON objects of the form {"error": message}.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Lifecycle
//
// [Server.Run] listens until its context is canceled, then shuts down gracefully.
package server
