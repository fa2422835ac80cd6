// Package auth wires the identity core into an HTTP surface: session
// introspection, OAuth sign-in with PKCE, email/password sign-in, and
// sign-out.
//
// The module serves browser and API clients from the same routes. Browsers
// carry the session token in an HttpOnly cookie; API and mobile clients use
// an Authorization bearer header and, after a cross-origin OAuth callback,
// receive the token once as a redirect query parameter.
package auth
