// Package services implements the Spotify client used by every artx front end.
//
// # Token Authenticator
//
// [TokenAuthenticator] performs the OAuth2 client-credentials grant against the accounts service.
// Each call to Authenticate issues exactly one token request; tokens are never cached or refreshed.
//
// # Search Client
//
// [SearchClient] issues an artist search with a bearer token and parses artists.items into [models.Artist] values.
// The response is parsed strictly: a missing name or followers.total discards the whole response.
//
// # Artist Service
//
// [ArtistService] implements [Service] by chaining the two: a fresh token for every search.
//
// # Requests
//
// Both clients describe their HTTP calls as [Request] values built by [BuildTokenRequest] and [BuildSearchRequest],
// so the exact method, URL, headers, and body can be inspected without a network.
//
// # Error Handling
//
// Failures are reported as [*AuthError] or [*SearchError], each carrying one of two kinds from the shared package:
//   - [shared.ErrRequestFailed] : transport failure or non-2xx status
//   - [shared.ErrMalformedResponse] : body was not valid JSON or lacked a required field
//
// Callers can match either with errors.Is, or recover the typed error with errors.As.
package services
