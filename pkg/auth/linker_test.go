package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/auth"
)

func TestLinker_Resolve(t *testing.T) {
	t.Parallel()

	profile := auth.ProviderProfile{
		ProviderAccountID: "discord-123",
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		Image:             "https://cdn.example.com/jane.png",
	}

	t.Run("existing account returns its user unchanged", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		existing := &auth.User{ID: userID, Name: "Old Name", Email: "jane@example.com"}

		storage := new(mockStorage)
		storage.On("GetAccount", mock.Anything, auth.ProviderDiscord, "discord-123").
			Return(&auth.Account{Provider: auth.ProviderDiscord, ProviderAccountID: "discord-123", UserID: userID}, nil)
		storage.On("GetUserByID", mock.Anything, userID).Return(existing, nil)

		linker := auth.NewLinker(storage)
		user, err := linker.Resolve(context.Background(), auth.ProviderDiscord, profile)
		require.NoError(t, err)
		require.NotNil(t, user)

		// Drifted provider fields must not overwrite the stored user.
		assert.Equal(t, "Old Name", user.Name)
		assert.Equal(t, userID, user.ID)
		storage.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
		storage.AssertExpectations(t)
	})

	t.Run("matching email links new account to existing user", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		existing := &auth.User{ID: userID, Name: "Jane Doe", Email: "jane@example.com"}

		storage := new(mockStorage)
		storage.On("GetAccount", mock.Anything, auth.ProviderGoogle, "discord-123").
			Return(nil, auth.ErrAccountNotFound)
		storage.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(existing, nil)
		storage.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *auth.Account) bool {
			return a.Provider == auth.ProviderGoogle && a.UserID == userID
		})).Return(nil)

		linker := auth.NewLinker(storage)
		user, err := linker.Resolve(context.Background(), auth.ProviderGoogle, profile)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		storage.AssertExpectations(t)
	})

	t.Run("unknown identity creates user and account atomically", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetAccount", mock.Anything, auth.ProviderGithub, "discord-123").
			Return(nil, auth.ErrAccountNotFound)
		storage.On("GetUserByEmail", mock.Anything, "jane@example.com").
			Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUserWithAccount", mock.Anything,
			mock.MatchedBy(func(u *auth.User) bool {
				return u.Email == "jane@example.com" && u.Name == "Jane Doe" && u.ID != uuid.Nil
			}),
			mock.MatchedBy(func(a *auth.Account) bool {
				return a.Provider == auth.ProviderGithub && a.ProviderAccountID == "discord-123"
			}),
		).Return(nil)

		linker := auth.NewLinker(storage)
		user, err := linker.Resolve(context.Background(), auth.ProviderGithub, profile)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		storage.AssertExpectations(t)
	})

	t.Run("retries lookup after losing a duplicate registration race", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		winner := &auth.User{ID: userID, Email: "jane@example.com"}

		storage := new(mockStorage)
		// First pass sees no rows, then the insert collides with the winner's.
		storage.On("GetAccount", mock.Anything, auth.ProviderDiscord, "discord-123").
			Return(nil, auth.ErrAccountNotFound).Once()
		storage.On("GetUserByEmail", mock.Anything, "jane@example.com").
			Return(nil, auth.ErrUserNotFound).Once()
		storage.On("CreateUserWithAccount", mock.Anything, mock.Anything, mock.Anything).
			Return(auth.ErrAccountExists).Once()
		// Retry finds the committed rows.
		storage.On("GetAccount", mock.Anything, auth.ProviderDiscord, "discord-123").
			Return(&auth.Account{Provider: auth.ProviderDiscord, ProviderAccountID: "discord-123", UserID: userID}, nil).Once()
		storage.On("GetUserByID", mock.Anything, userID).Return(winner, nil).Once()

		linker := auth.NewLinker(storage)
		user, err := linker.Resolve(context.Background(), auth.ProviderDiscord, profile)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		storage.AssertExpectations(t)
	})

	t.Run("rejects profile without provider account id", func(t *testing.T) {
		t.Parallel()

		linker := auth.NewLinker(new(mockStorage))
		_, err := linker.Resolve(context.Background(), auth.ProviderDiscord, auth.ProviderProfile{Email: "jane@example.com"})
		require.Error(t, err)
	})

	t.Run("rejects profile without email", func(t *testing.T) {
		t.Parallel()

		linker := auth.NewLinker(new(mockStorage))
		_, err := linker.Resolve(context.Background(), auth.ProviderDiscord, auth.ProviderProfile{ProviderAccountID: "discord-123"})
		require.Error(t, err)
	})
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	github := auth.NewGitHubProvider(auth.GitHubConfig{ClientID: "id", ClientSecret: "secret"})
	registry := auth.NewRegistry(github)

	t.Run("known provider", func(t *testing.T) {
		t.Parallel()

		p, err := registry.Get(auth.ProviderGithub)
		require.NoError(t, err)
		assert.Equal(t, auth.ProviderGithub, p.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Get("myspace")
		require.ErrorIs(t, err, auth.ErrProviderNotSupported)
	})
}

func TestProvider_AuthorizationURL(t *testing.T) {
	t.Parallel()

	t.Run("discord includes pkce challenge", func(t *testing.T) {
		t.Parallel()

		p := auth.NewDiscordProvider(auth.DiscordConfig{
			ClientID:    "client",
			RedirectURL: "https://app.example.com/auth/oauth/discord/callback",
			Scopes:      []string{"identify", "email"},
		})
		u, err := p.AuthorizationURL("state-nonce", "verifier-verifier-verifier-verifier-12345")
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, "state-nonce", q.Get("state"))
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.NotEmpty(t, q.Get("code_challenge"))
		assert.Equal(t, "client", q.Get("client_id"))
	})

	t.Run("github omits pkce parameters", func(t *testing.T) {
		t.Parallel()

		p := auth.NewGitHubProvider(auth.GitHubConfig{ClientID: "client"})
		u, err := p.AuthorizationURL("state-nonce", "ignored-verifier")
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, "state-nonce", q.Get("state"))
		assert.Empty(t, q.Get("code_challenge"))
	})
}
