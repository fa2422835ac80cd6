// Package cookie provides a small manager for HTTP cookies with secure
// defaults (Path=/, HttpOnly, SameSite=Lax) and functional options for
// per-cookie overrides.
//
// Values are stored as-is. Session tokens are opaque and already re-validated
// against the store on every request, and transient OAuth state must round
// trip to clients that read it back, so no cookie-level signing or encryption
// layer is applied.
package cookie
