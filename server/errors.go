package server

import "errors"

var (
	// ErrStateMismatch is returned when a callback's state parameter does not
	// correlate with a pending login flow. Possible forgery or replay; the
	// flow is terminated and the session stays anonymous.
	ErrStateMismatch = errors.New("state mismatch")

	// ErrUnauthenticated is returned when a protected route is requested
	// without a live authenticated session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when an authenticated session lacks the role
	// a route requires.
	ErrForbidden = errors.New("forbidden")
)
