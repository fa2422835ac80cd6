// Package auth contains the identity core: user and account records, the
// storage contract they live behind, OAuth provider adapters, and the
// account linking engine that resolves an external identity to a local user.
//
// # Providers
//
// Each OAuth provider implements the Provider interface: building an
// authorization URL (with PKCE where the provider supports it) and exchanging
// an authorization code for a normalized profile. Providers are selected by
// name from a Registry built at startup; nothing in the request path switches
// on provider strings.
//
// # Account linking
//
// Linker.Resolve maps a provider profile onto a local user in three ordered
// outcomes: an account row for (provider, providerAccountID) already exists
// and its user is returned unchanged; a user with the profile email exists
// and gains a new account row; or a fresh user and account are created in one
// transaction. Two providers reporting the same email deliberately merge into
// one user — email is the merge key.
package auth
