package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

// CookieTransport carries the session token in an HttpOnly cookie. The
// cookie expiry mirrors the session expiry so the browser drops the token
// when the server-side row would be reaped anyway.
type CookieTransport struct {
	cookies    *cookie.Manager
	cookieName string
	secure     bool
}

// NewCookieTransport creates a cookie-based transport. Set secure for
// production deployments behind TLS.
func NewCookieTransport(cookies *cookie.Manager, cookieName string, secure bool) *CookieTransport {
	return &CookieTransport{
		cookies:    cookies,
		cookieName: cookieName,
		secure:     secure,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.Get(r, t.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, expires time.Time) error {
	t.cookies.Set(w, t.cookieName, token,
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(t.secure),
		cookie.WithExpires(expires),
	)
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.cookieName)
	return nil
}

var _ Transport = (*CookieTransport)(nil)
