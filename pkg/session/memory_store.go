package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/auth"
)

// MemoryStore is an in-memory Store for tests and single-process setups.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	users    map[uuid.UUID]*auth.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		users:    make(map[uuid.UUID]*auth.User),
	}
}

// PutUser registers a user so GetWithUser can join sessions to it.
func (s *MemoryStore) PutUser(user *auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
}

func (s *MemoryStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.TokenHash] = &sess
	return nil
}

func (s *MemoryStore) GetWithUser(_ context.Context, tokenHash string) (*Session, *auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	user, ok := s.users[sess.UserID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	sessCopy := *sess
	userCopy := *user
	return &sessCopy, &userCopy, nil
}

func (s *MemoryStore) UpdateExpiry(_ context.Context, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return ErrSessionNotFound
	}
	sess.ExpiresAt = expiresAt
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

func (s *MemoryStore) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, hash)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for hash, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, hash)
		}
	}
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
