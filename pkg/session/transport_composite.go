package session

import (
	"net/http"
	"time"
)

// CompositeTransport tries multiple transports in order. Reads return the
// first token found; writes go to every transport so browser and API
// clients both receive the token.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a composite over the given transports.
// Order matters for reads: list the preferred source first.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		token, err := transport.GetToken(r)
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, expires time.Time) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, token, expires); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

var _ Transport = (*CompositeTransport)(nil)
