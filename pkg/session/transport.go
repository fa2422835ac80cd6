package session

import (
	"net/http"
	"time"
)

// Transport moves the raw session token between client and server.
type Transport interface {
	// GetToken extracts the token from the request, or ErrSessionNotFound.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the token to the client with the given expiry.
	SetToken(w http.ResponseWriter, token string, expires time.Time) error

	// ClearToken removes the token from the response.
	ClearToken(w http.ResponseWriter) error
}
