package auth_test

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	authmodule "github.com/dmitrymomot/authkit/modules/auth"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// memBackend implements both auth.Storage and session.Store over shared
// maps, mirroring how the postgres implementations share one database.
type memBackend struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*auth.User
	accounts map[string]*auth.Account
	sessions map[string]*session.Session
}

func newMemBackend() *memBackend {
	return &memBackend{
		users:    make(map[uuid.UUID]*auth.User),
		accounts: make(map[string]*auth.Account),
		sessions: make(map[string]*session.Session),
	}
}

func accountKey(provider, providerAccountID string) string {
	return provider + "|" + providerAccountID
}

func (b *memBackend) CreateUser(_ context.Context, user *auth.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Email == user.Email {
			return auth.ErrEmailAlreadyExists
		}
	}
	u := *user
	b.users[user.ID] = &u
	return nil
}

func (b *memBackend) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (b *memBackend) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (b *memBackend) UpdateUser(_ context.Context, user *auth.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[user.ID]; !ok {
		return auth.ErrUserNotFound
	}
	u := *user
	b.users[user.ID] = &u
	return nil
}

func (b *memBackend) GetAccount(_ context.Context, provider, providerAccountID string) (*auth.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[accountKey(provider, providerAccountID)]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (b *memBackend) CreateAccount(_ context.Context, account *auth.Account) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := accountKey(account.Provider, account.ProviderAccountID)
	if _, ok := b.accounts[key]; ok {
		return auth.ErrAccountExists
	}
	a := *account
	b.accounts[key] = &a
	return nil
}

func (b *memBackend) CreateUserWithAccount(_ context.Context, user *auth.User, account *auth.Account) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := accountKey(account.Provider, account.ProviderAccountID)
	if _, ok := b.accounts[key]; ok {
		return auth.ErrAccountExists
	}
	for _, u := range b.users {
		if u.Email == user.Email {
			return auth.ErrEmailAlreadyExists
		}
	}
	u := *user
	a := *account
	b.users[user.ID] = &u
	b.accounts[key] = &a
	return nil
}

func (b *memBackend) Create(_ context.Context, sess *session.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := *sess
	b.sessions[sess.TokenHash] = &s
	return nil
}

func (b *memBackend) GetWithUser(_ context.Context, tokenHash string) (*session.Session, *auth.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[tokenHash]
	if !ok {
		return nil, nil, session.ErrSessionNotFound
	}
	user, ok := b.users[sess.UserID]
	if !ok {
		return nil, nil, session.ErrSessionNotFound
	}
	sessCopy := *sess
	userCopy := *user
	return &sessCopy, &userCopy, nil
}

func (b *memBackend) UpdateExpiry(_ context.Context, tokenHash string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[tokenHash]
	if !ok {
		return session.ErrSessionNotFound
	}
	sess.ExpiresAt = expiresAt
	return nil
}

func (b *memBackend) Delete(_ context.Context, tokenHash string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, tokenHash)
	return nil
}

func (b *memBackend) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for hash, sess := range b.sessions {
		if sess.UserID == userID {
			delete(b.sessions, hash)
		}
	}
	return nil
}

func (b *memBackend) DeleteExpired(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	for hash, sess := range b.sessions {
		if sess.Expired(now) {
			delete(b.sessions, hash)
		}
	}
	return nil
}

func (b *memBackend) sessionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

func (b *memBackend) userCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.users)
}

var (
	_ auth.Storage  = (*memBackend)(nil)
	_ session.Store = (*memBackend)(nil)
)

// stubProvider is a canned identity provider.
type stubProvider struct {
	name    string
	profile auth.ProviderProfile
	err     error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) AuthorizationURL(state, _ string) (*url.URL, error) {
	return url.Parse("https://provider.test/authorize?state=" + url.QueryEscape(state))
}

func (p *stubProvider) FetchUserData(context.Context, string, string) (auth.ProviderProfile, error) {
	if p.err != nil {
		return auth.ProviderProfile{}, p.err
	}
	return p.profile, nil
}

var _ auth.Provider = (*stubProvider)(nil)

type testEnv struct {
	module  *authmodule.Module
	backend *memBackend
	hasher  *password.Hasher
}

func newTestEnv(cfg authmodule.Config, providers ...auth.Provider) *testEnv {
	backend := newMemBackend()
	cookies := cookie.New()
	transport := session.NewCompositeTransport(
		session.NewCookieTransport(cookies, "auth_token", cfg.Production),
		session.NewHeaderTransport("Authorization"),
	)
	sessions := session.NewManager(backend, session.WithTransport(transport))
	hasher, err := password.New("test-secret")
	if err != nil {
		panic(err)
	}

	if cfg.MobileScheme == "" {
		cfg.MobileScheme = "exp"
	}

	m := authmodule.NewModule(
		cfg,
		auth.NewRegistry(providers...),
		auth.NewLinker(backend),
		backend,
		hasher,
		sessions,
		transport,
		cookies,
	)
	return &testEnv{module: m, backend: backend, hasher: hasher}
}
