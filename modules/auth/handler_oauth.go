package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/token"
)

// handleOAuthStart begins the authorization code flow. The CSRF state, the
// PKCE verifier, and the post-login destination ride in short-lived
// HttpOnly cookies so the callback can verify them without server state.
func (m *Module) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	provider, err := m.providers.Get(providerName)
	if err != nil {
		respondError(w, http.StatusNotFound, auth.ErrProviderNotSupported.Error())
		return
	}

	target, ok := m.validateRedirect(r, r.URL.Query().Get("redirect_to"))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid redirect_to")
		return
	}

	// Mobile dev clients redirect to an unstable exp:// origin that can't
	// be registered with a provider; bounce them through the proxy, which
	// re-enters the flow from its stable https origin.
	if target.mobile && !m.cfg.Production {
		if m.cfg.ProxyURL == "" {
			m.logger.Error("mobile redirect requested but AUTH_PROXY_URL is not set")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		loc, err := m.proxyRedirect(target)
		if err != nil {
			m.logger.Error("failed to build proxy redirect", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		http.Redirect(w, r, loc, http.StatusFound)
		return
	}

	state, err := token.Generate()
	if err != nil {
		m.logger.Error("failed to generate state", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	verifier := oauth2.GenerateVerifier()

	authURL, err := provider.AuthorizationURL(state, verifier)
	if err != nil {
		m.logger.Error("failed to build authorization url",
			logger.Error(err), logger.Provider(providerName))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	m.setTransient(w, stateCookie, state)
	m.setTransient(w, verifierCookie, verifier)
	m.setTransient(w, redirectToCookie, target.String())

	http.Redirect(w, r, authURL.String(), http.StatusFound)
}

// handleOAuthCallback completes the flow. The transient cookies are cleared
// unconditionally before any check: whether the callback succeeds or fails,
// the handshake is over and the values must not be replayable.
func (m *Module) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	provider, err := m.providers.Get(providerName)
	if err != nil {
		respondError(w, http.StatusNotFound, auth.ErrProviderNotSupported.Error())
		return
	}

	expectedState, _ := m.cookies.Get(r, stateCookie)
	verifier, _ := m.cookies.Get(r, verifierCookie)
	redirectTo, _ := m.cookies.Get(r, redirectToCookie)
	m.clearTransients(w)

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || expectedState == "" || state != expectedState || verifier == "" || code == "" {
		respondError(w, http.StatusUnauthorized, "invalid state")
		return
	}

	profile, err := provider.FetchUserData(r.Context(), code, verifier)
	if err != nil {
		// Provider error bodies can carry sensitive detail; log them and
		// return a generic message.
		m.logger.Error("failed to fetch user data",
			logger.Error(err), logger.Provider(providerName))
		respondError(w, http.StatusInternalServerError, auth.ErrFetchUserData.Error())
		return
	}

	user, err := m.linker.Resolve(r.Context(), provider.Name(), profile)
	if err != nil {
		m.logger.Error("failed to resolve account",
			logger.Error(err), logger.Provider(providerName))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	raw, expiresAt, err := m.sessions.Create(r.Context(), user.ID)
	if err != nil {
		m.logger.Error("failed to create session",
			logger.Error(err), logger.UserID(user.ID.String()))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := m.transport.SetToken(w, raw, expiresAt); err != nil {
		m.logger.Warn("failed to set session token", logger.Error(err))
	}

	target, ok := m.validateRedirect(r, redirectTo)
	if !ok {
		target, _ = m.validateRedirect(r, "/")
	}

	loc := target.String()
	if target.crossOrigin {
		// A cross-origin destination can't read the cookie we just set, so
		// it gets the raw token once, as a query parameter.
		loc = target.withToken(raw)
	}
	http.Redirect(w, r, loc, http.StatusFound)
}

func (m *Module) setTransient(w http.ResponseWriter, name, value string) {
	m.cookies.Set(w, name, value,
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(m.cfg.Production),
		cookie.WithMaxAge(int(transientCookieMaxAge.Seconds())),
	)
}

func (m *Module) clearTransients(w http.ResponseWriter) {
	m.cookies.Delete(w, stateCookie)
	m.cookies.Delete(w, verifierCookie)
	m.cookies.Delete(w, redirectToCookie)
}
