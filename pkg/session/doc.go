// Package session implements opaque-token server-side sessions with a
// sliding expiration window.
//
// A session is created for a user ID and identified by a random opaque
// token. Only the token's SHA-256 hash is persisted; the raw token exists in
// the client's cookie (or Authorization header) and nowhere else. Validation
// is a single hashed lookup, and any validation past the halfway point of
// the session lifetime slides the expiry forward by a full TTL.
//
// Expired rows are reaped lazily on lookup, so a store never needs a
// background sweeper to stay correct (stores may still implement
// DeleteExpired for housekeeping).
//
//	manager := session.NewManager(store, session.WithTransport(transport))
//	token, expires, err := manager.Create(ctx, userID)
//	result, err := manager.Authenticate(r.Context(), w, r)
package session
