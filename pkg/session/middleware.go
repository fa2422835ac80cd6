package session

import (
	"net/http"
)

// Middleware resolves the request's session and stores the result in the
// request context. Anonymous requests pass through with an anonymous result;
// only storage failures short-circuit.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := m.Authenticate(r.Context(), w, r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), result)))
	})
}

// RequireAuth rejects requests without an authenticated session.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, ok := FromContext(r.Context())
		if !ok {
			var err error
			result, err = m.Authenticate(r.Context(), w, r)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			r = r.WithContext(WithResult(r.Context(), result))
		}
		if !result.Authenticated() {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
