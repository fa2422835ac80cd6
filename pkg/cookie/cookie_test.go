package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

func TestManager_Set(t *testing.T) {
	t.Run("applies secure defaults", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		m.Set(w, "auth_token", "value")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "auth_token", c.Name)
		assert.Equal(t, "value", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
	})

	t.Run("per-cookie options override defaults", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()
		expires := time.Now().Add(time.Hour).Truncate(time.Second)

		m.Set(w, "auth_state", "nonce",
			cookie.WithMaxAge(300),
			cookie.WithSecure(true),
			cookie.WithExpires(expires),
		)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, 300, cookies[0].MaxAge)
		assert.True(t, cookies[0].Secure)
		assert.WithinDuration(t, expires, cookies[0].Expires, time.Second)
	})

	t.Run("manager defaults apply to every cookie", func(t *testing.T) {
		m := cookie.New(cookie.WithSecure(true))
		w := httptest.NewRecorder()

		m.Set(w, "a", "1")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
	})
}

func TestManager_Get(t *testing.T) {
	m := cookie.New()

	t.Run("returns request cookie value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "auth_token", Value: "raw"})

		v, err := m.Get(r, "auth_token")
		require.NoError(t, err)
		assert.Equal(t, "raw", v)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := m.Get(r, "auth_token")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	m := cookie.New()
	w := httptest.NewRecorder()

	m.Delete(w, "auth_token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
