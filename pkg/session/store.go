package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/auth"
)

// Store persists sessions keyed by token hash. GetWithUser returns the
// session together with its owning user in one round trip, since every
// successful validation needs both.
type Store interface {
	// Create inserts a new session row.
	Create(ctx context.Context, session *Session) error

	// GetWithUser returns the session for the given token hash and its user,
	// or ErrSessionNotFound.
	GetWithUser(ctx context.Context, tokenHash string) (*Session, *auth.User, error)

	// UpdateExpiry moves the session expiry to the given time.
	UpdateExpiry(ctx context.Context, tokenHash string, expiresAt time.Time) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every session belonging to the user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes rows whose expiry has passed. Optional
	// housekeeping; validation already reaps expired rows it touches.
	DeleteExpired(ctx context.Context) error
}
