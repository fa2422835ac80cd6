package password

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hasher derives and verifies password digests using a server-side secret.
type Hasher struct {
	secret string
}

// New returns a Hasher keyed with the given server secret.
// An empty secret returns ErrNoSecret so misconfiguration surfaces at
// startup, never at request time.
func New(secret string) (*Hasher, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Hasher{secret: secret}, nil
}

// Hash returns the hex-encoded SHA3-512 digest of the password salted with
// the server secret. The result is stored verbatim in the user record.
func (h *Hasher) Hash(password string) string {
	sum := sha3.Sum512([]byte(password + h.secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether password matches the stored digest. The comparison
// runs in constant time over the full digest.
func (h *Hasher) Verify(password, storedDigest string) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
