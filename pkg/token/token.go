package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
)

// tokenBytes is the entropy of a generated token. 160 bits keeps collision
// probability negligible at any realistic session count.
const tokenBytes = 20

// Lowercase variant of the standard base32 alphabet, no padding, so tokens
// survive case-insensitive transports and URL query strings untouched.
var encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Generate returns a new opaque token from the system CSPRNG.
func Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return encoding.EncodeToString(b), nil
}

// Hash derives the storage lookup key for a raw token: lowercase hex of its
// SHA-256 digest. Deterministic and one-way; the raw token is never stored.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
