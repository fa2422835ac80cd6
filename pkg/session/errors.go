package session

import "errors"

var (
	// ErrSessionNotFound indicates no session token was found or the token
	// does not match a stored session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoTransport indicates a transport-dependent method was called on a
	// manager built without a transport.
	ErrNoTransport = errors.New("no transport configured")
)
