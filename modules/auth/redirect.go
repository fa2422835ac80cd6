package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// redirectTarget is a validated post-login destination.
type redirectTarget struct {
	url *url.URL

	// crossOrigin marks destinations outside the request origin; those
	// can't read the session cookie, so the callback hands them the raw
	// token as a query parameter instead.
	crossOrigin bool

	// mobile marks custom-scheme destinations (e.g. exp://...).
	mobile bool
}

func (t redirectTarget) String() string {
	return t.url.String()
}

// withToken returns the destination with the raw session token appended as
// a query parameter.
func (t redirectTarget) withToken(token string) string {
	u := *t.url
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// validateRedirect parses a client-supplied redirect destination. Accepted
// shapes: a relative path, an absolute URL on the request's own origin, an
// absolute URL on an allow-listed origin, or the configured mobile scheme.
// Anything else is rejected so the handler can fall back to "/".
func (m *Module) validateRedirect(r *http.Request, raw string) (redirectTarget, bool) {
	if raw == "" {
		raw = "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return redirectTarget{}, false
	}

	switch {
	case u.Scheme == "" && u.Host == "":
		// Relative path. A "//host" prefix is a protocol-relative URL, not
		// a path, and would escape the origin.
		if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
			return redirectTarget{}, false
		}
		return redirectTarget{url: u}, true

	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == r.Host {
			return redirectTarget{url: u}, true
		}
		origin := u.Scheme + "://" + u.Host
		for _, allowed := range m.cfg.AllowedOrigins {
			if strings.EqualFold(origin, strings.TrimRight(allowed, "/")) {
				return redirectTarget{url: u, crossOrigin: true}, true
			}
		}
		return redirectTarget{}, false

	case u.Scheme == m.cfg.MobileScheme:
		return redirectTarget{url: u, crossOrigin: true, mobile: true}, true

	default:
		return redirectTarget{}, false
	}
}

// proxyRedirect builds the dev-proxy URL that relays a mobile redirect
// through a stable https origin.
func (m *Module) proxyRedirect(target redirectTarget) (string, error) {
	proxy, err := url.Parse(m.cfg.ProxyURL)
	if err != nil {
		return "", err
	}
	q := proxy.Query()
	q.Set("redirect_to", target.String())
	proxy.RawQuery = q.Encode()
	return proxy.String(), nil
}
