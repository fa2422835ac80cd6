package auth

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the relational contract the identity core consumes. Lookups
// return ErrUserNotFound / ErrAccountNotFound for absent rows; inserts that
// collide with a uniqueness constraint return ErrEmailAlreadyExists or
// ErrAccountExists so callers can distinguish races from failures.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	GetAccount(ctx context.Context, provider, providerAccountID string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error

	// CreateUserWithAccount inserts both rows in one transaction; if either
	// insert fails neither is committed.
	CreateUserWithAccount(ctx context.Context, user *User, account *Account) error
}
