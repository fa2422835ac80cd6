package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Linker resolves an external provider identity to a local user.
type Linker struct {
	storage Storage
	logger  *slog.Logger
}

// LinkerOption configures a Linker during construction.
type LinkerOption func(*Linker)

// WithLinkerLogger sets a custom logger for the linker.
func WithLinkerLogger(l *slog.Logger) LinkerOption {
	return func(lk *Linker) {
		lk.logger = l
	}
}

// NewLinker constructs an account linking engine over the given storage.
func NewLinker(storage Storage, opts ...LinkerOption) *Linker {
	lk := &Linker{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(lk)
	}
	return lk
}

// Resolve maps a provider profile onto a local user:
//
//  1. An account for (provider, providerAccountID) exists: its user is
//     returned unchanged. Drifted profile fields are not written back.
//  2. A user with the profile email exists: a new account row links the
//     provider to that user. Email is the merge key across providers.
//  3. Otherwise a new user and account are created in one transaction.
//
// A concurrent identical registration can make either insert collide with
// the (provider, providerAccountID) uniqueness constraint; Resolve retries
// the lookup once so both requests converge on the same user.
func (lk *Linker) Resolve(ctx context.Context, provider string, profile ProviderProfile) (*User, error) {
	if profile.ProviderAccountID == "" {
		return nil, fmt.Errorf("invalid profile: missing provider account id")
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("invalid profile: missing email address")
	}

	user, err := lk.resolve(ctx, provider, profile)
	if errors.Is(err, ErrAccountExists) {
		// Lost a race against an identical registration; the winner's rows
		// are now visible.
		user, err = lk.resolve(ctx, provider, profile)
	}
	return user, err
}

func (lk *Linker) resolve(ctx context.Context, provider string, profile ProviderProfile) (*User, error) {
	account, err := lk.storage.GetAccount(ctx, provider, profile.ProviderAccountID)
	if err == nil {
		user, err := lk.storage.GetUserByID(ctx, account.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to sign in with %s: %w", provider, err)
		}
		return user, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	now := time.Now()
	newAccount := &Account{
		Provider:            provider,
		ProviderAccountID:   profile.ProviderAccountID,
		ProviderAccountName: profile.Name,
		CreatedAt:           now,
	}

	user, err := lk.storage.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		newAccount.UserID = user.ID
		if err := lk.storage.CreateAccount(ctx, newAccount); err != nil {
			return nil, err
		}
		lk.logger.Info("linked provider to existing user",
			logger.UserID(user.ID.String()),
			logger.Provider(provider),
			logger.Component("linker"),
		)
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	user = &User{
		ID:        uuid.New(),
		Name:      profile.Name,
		Email:     profile.Email,
		Image:     profile.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	newAccount.UserID = user.ID

	if err := lk.storage.CreateUserWithAccount(ctx, user, newAccount); err != nil {
		return nil, err
	}

	lk.logger.Info("created user from provider profile",
		logger.UserID(user.ID.String()),
		logger.Provider(provider),
		logger.Component("linker"),
	)
	return user, nil
}
