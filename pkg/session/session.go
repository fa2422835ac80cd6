package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/auth"
)

// Session is the persisted record. TokenHash is the hex-encoded SHA-256 of
// the raw opaque token; the raw token itself is never stored.
type Session struct {
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Expired reports whether the session expiry has passed at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Result is the outcome of validating a token. An anonymous result carries a
// nil User and the validation timestamp as Expires, which serializes the
// same way for both browser and API clients.
type Result struct {
	User    *auth.User `json:"user,omitempty"`
	Expires time.Time  `json:"expires"`

	refreshed bool
}

// Authenticated reports whether the result belongs to a signed-in user.
func (r Result) Authenticated() bool {
	return r.User != nil
}

// Refreshed reports whether this validation slid the expiry forward.
func (r Result) Refreshed() bool {
	return r.refreshed
}

func anonymous(now time.Time) Result {
	return Result{Expires: now}
}
