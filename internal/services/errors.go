package services

import (
	"errors"
	"fmt"

	"github.com/desertthunder/artx/internal/shared"
)

// AuthError reports a failed token request.
//
// Kind is [shared.ErrRequestFailed] or [shared.ErrMalformedResponse].
type AuthError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return formatError("spotify auth", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() []error {
	return unwrap(e.Kind, e.Err)
}

// SearchError reports a failed artist search.
//
// Kind is [shared.ErrRequestFailed] or [shared.ErrMalformedResponse].
type SearchError struct {
	Kind    error
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return formatError("spotify search", e.Kind, e.Message)
}

func (e *SearchError) Unwrap() []error {
	return unwrap(e.Kind, e.Err)
}

func formatError(op string, kind error, msg string) string {
	if kind == nil {
		kind = shared.ErrRequestFailed
	}
	if msg == "" {
		return fmt.Sprintf("%s: %v", op, kind)
	}
	return fmt.Sprintf("%s: %v: %s", op, kind, msg)
}

func unwrap(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// IsMalformed reports whether err is a malformed-response failure from either client.
func IsMalformed(err error) bool {
	return errors.Is(err, shared.ErrMalformedResponse)
}

// IsRequestFailed reports whether err is a transport or status failure from either client.
func IsRequestFailed(err error) bool {
	return errors.Is(err, shared.ErrRequestFailed)
}
