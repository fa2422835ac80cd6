package session

import "time"

// Config holds session settings loaded from the environment.
type Config struct {
	// CookieName is the session cookie name.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"auth_token"`

	// TTL is the session lifetime; the sliding refresh threshold is TTL/2.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// SecureCookies marks the session cookie Secure. Enable behind TLS.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}
