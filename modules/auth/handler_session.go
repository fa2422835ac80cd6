package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// handleSession reports the current session state. Anonymous requests get a
// 200 with a nil user rather than an error, so clients can poll this
// endpoint without special-casing. A validation past the refresh threshold
// slides the expiry and rewrites the cookie in the same response.
func (m *Module) handleSession(w http.ResponseWriter, r *http.Request) {
	result, err := m.sessions.Authenticate(r.Context(), w, r)
	if err != nil {
		m.logger.Error("session validation failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignIn authenticates with email and password. Unknown emails,
// OAuth-only users without a password hash, and wrong passwords all produce
// the same 401 so the response doesn't leak which emails are registered.
func (m *Module) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := m.storage.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
			return
		}
		m.logger.Error("sign-in lookup failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.PasswordHash == "" || !m.hasher.Verify(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, expiresAt, err := m.sessions.Create(r.Context(), user.ID)
	if err != nil {
		m.logger.Error("failed to create session", logger.Error(err), logger.UserID(user.ID.String()))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := m.transport.SetToken(w, token, expiresAt); err != nil {
		m.logger.Warn("failed to set session token", logger.Error(err))
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleSignOut revokes the current session, if any, and always lands the
// client back on the root page.
func (m *Module) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.sessions.Invalidate(r.Context(), token); err != nil {
			m.logger.Error("failed to invalidate session", logger.Error(err))
		}
	}
	_ = m.transport.ClearToken(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
