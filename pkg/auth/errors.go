package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountExists      = errors.New("provider account already linked")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Provider errors.
var (
	ErrProviderNotSupported = errors.New("provider not supported")
	ErrFetchUserData        = errors.New("failed to fetch user data")
)
