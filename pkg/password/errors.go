package password

import "errors"

// ErrNoSecret indicates the server-side hashing secret is unconfigured.
// Callers are expected to treat this as a fatal startup error.
var ErrNoSecret = errors.New("password: server secret is not configured")
