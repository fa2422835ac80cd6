package auth

import "time"

// transientCookieMaxAge bounds the OAuth handshake cookies. A browser that
// takes longer than this between start and callback restarts the flow.
const transientCookieMaxAge = 5 * time.Minute

// Transient cookie names used during the OAuth handshake.
const (
	stateCookie      = "auth_state"
	verifierCookie   = "code_verifier"
	redirectToCookie = "redirect_to"
)

// Config holds module settings loaded from the environment.
type Config struct {
	// Production marks cookies Secure and disables the dev redirect proxy.
	Production bool `env:"AUTH_PRODUCTION" envDefault:"false"`

	// ProxyURL is the https origin that relays OAuth redirects to mobile
	// dev clients. Required when a mobile-scheme redirect arrives outside
	// production.
	ProxyURL string `env:"AUTH_PROXY_URL"`

	// AllowedOrigins lists external origins that may receive post-login
	// redirects. The request's own origin is always allowed.
	AllowedOrigins []string `env:"AUTH_ALLOWED_ORIGINS" envSeparator:","`

	// MobileScheme is the custom URL scheme mobile clients redirect to.
	MobileScheme string `env:"AUTH_MOBILE_SCHEME" envDefault:"exp"`
}
