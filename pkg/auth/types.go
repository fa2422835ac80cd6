package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a local identity record. PasswordHash is empty for OAuth-only
// users and is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Account links an external provider identity to a local user. The
// (Provider, ProviderAccountID) pair identifies the row; a user holds at
// most one account per provider.
type Account struct {
	Provider            string
	ProviderAccountID   string
	ProviderAccountName string
	UserID              uuid.UUID
	CreatedAt           time.Time
}

// ProviderProfile is the normalized identity a provider adapter returns
// after a successful code exchange and profile fetch.
type ProviderProfile struct {
	ProviderAccountID string
	Name              string
	Email             string
	Image             string
}
