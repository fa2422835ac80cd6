package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/token"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 30 * 24 * time.Hour

// Manager issues, validates, and revokes sessions.
type Manager struct {
	store     Store
	transport Transport
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithTTL sets the session lifetime. The refresh threshold is always half
// of it.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithTransport sets the transport used by Authenticate and the HTTP
// middleware.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		m.transport = t
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// withClock overrides the time source in tests.
func withClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a new session for the user and returns the raw token and
// its expiry. The raw token is handed to the client once and never stored.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	raw, err := token.Generate()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := m.now().Add(m.ttl)
	if err := m.store.Create(ctx, &Session{
		TokenHash: token.Hash(raw),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}
	return raw, expiresAt, nil
}

// Validate resolves a raw token into a Result. An empty, unknown, or
// expired token yields an anonymous result, never an error; errors are
// reserved for storage failures. Validation past the halfway point of the
// lifetime slides the expiry to now+TTL.
func (m *Manager) Validate(ctx context.Context, raw string) (Result, error) {
	now := m.now()
	if raw == "" {
		return anonymous(now), nil
	}

	hash := token.Hash(raw)
	sess, user, err := m.store.GetWithUser(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return anonymous(now), nil
		}
		return Result{}, fmt.Errorf("failed to validate session: %w", err)
	}

	if sess.Expired(now) {
		// Reap the row on the way out so expired sessions don't accumulate.
		if err := m.store.Delete(ctx, hash); err != nil {
			m.logger.Warn("failed to delete expired session", logger.Error(err))
		}
		return anonymous(now), nil
	}

	result := Result{User: user, Expires: sess.ExpiresAt}
	if now.After(sess.ExpiresAt.Add(-m.ttl / 2)) {
		newExpiry := now.Add(m.ttl)
		if err := m.store.UpdateExpiry(ctx, hash, newExpiry); err != nil {
			// Concurrent refreshes race benignly; the session stays valid
			// either way, so a failed extension is not a validation failure.
			m.logger.Warn("failed to refresh session", logger.Error(err))
			return result, nil
		}
		result.Expires = newExpiry
		result.refreshed = true
	}
	return result, nil
}

// Authenticate resolves the request's token through the transport. When
// validation slides the expiry, the refreshed expiry is written back to the
// client so the cookie tracks the session row.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (Result, error) {
	if m.transport == nil {
		return Result{}, ErrNoTransport
	}

	raw, err := m.transport.GetToken(r)
	if err != nil {
		return anonymous(m.now()), nil
	}

	result, err := m.Validate(ctx, raw)
	if err != nil {
		return Result{}, err
	}
	if result.Refreshed() {
		if err := m.transport.SetToken(w, raw, result.Expires); err != nil {
			m.logger.Warn("failed to rewrite session token", logger.Error(err))
		}
	}
	return result, nil
}

// Invalidate revokes the session for the raw token. Unknown tokens are a
// no-op, so sign-out is idempotent.
func (m *Manager) Invalidate(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token.Hash(raw)); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	return nil
}

// InvalidateAll revokes every session belonging to the user.
func (m *Manager) InvalidateAll(ctx context.Context, userID uuid.UUID) error {
	if err := m.store.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate user sessions: %w", err)
	}
	return nil
}
