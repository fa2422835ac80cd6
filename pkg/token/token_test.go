package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/token"
)

func TestGenerate(t *testing.T) {
	t.Run("returns url-safe lowercase token", func(t *testing.T) {
		raw, err := token.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
		assert.Equal(t, strings.ToLower(raw), raw)
		// 20 bytes of entropy encode to 32 base32 characters
		assert.Len(t, raw, 32)
		assert.NotContains(t, raw, "=")
	})

	t.Run("no collisions across many tokens", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for range 10000 {
			raw, err := token.Generate()
			require.NoError(t, err)

			key := token.Hash(raw)
			_, dup := seen[key]
			require.False(t, dup, "hash collision for token %q", raw)
			seen[key] = struct{}{}
		}
	})
}

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		raw, err := token.Generate()
		require.NoError(t, err)
		assert.Equal(t, token.Hash(raw), token.Hash(raw))
	})

	t.Run("lowercase hex of sha256", func(t *testing.T) {
		key := token.Hash("abc")
		assert.Len(t, key, 64)
		assert.Equal(t, strings.ToLower(key), key)
		// well-known sha256("abc")
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", key)
	})

	t.Run("distinct inputs produce distinct keys", func(t *testing.T) {
		assert.NotEqual(t, token.Hash("a"), token.Hash("b"))
	})
}
