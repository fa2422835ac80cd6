package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the session token in an HTTP header, Bearer-style
// by default. Used by API and mobile clients that don't speak cookies.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix overrides the "Bearer " value prefix.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport creates a header-based transport.
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: headerName,
		prefix:     "Bearer ",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrSessionNotFound
	}
	if t.prefix != "" {
		if !strings.HasPrefix(value, t.prefix) {
			return "", ErrSessionNotFound
		}
		value = strings.TrimPrefix(value, t.prefix)
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, expires time.Time) error {
	value := token
	if t.prefix != "" {
		value = t.prefix + token
	}
	w.Header().Set(t.headerName, value)
	if !expires.IsZero() {
		w.Header().Set(t.headerName+"-Expires", expires.UTC().Format(time.RFC3339))
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}

var _ Transport = (*HeaderTransport)(nil)
