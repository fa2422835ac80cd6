package auth

import (
	"context"
	"net/url"
)

// Provider names used for storage keys and route parameters.
const (
	ProviderDiscord = "discord"
	ProviderGoogle  = "google"
	ProviderGithub  = "github"
)

// Provider abstracts one external identity provider behind the two
// primitives the auth flow needs. Implementations own all protocol details
// (oauth2.Config, token exchange, profile endpoints) and must not leak
// provider error bodies to callers: wrap upstream failures in
// ErrFetchUserData and keep the detail for server-side logs.
type Provider interface {
	// Name returns the stable provider identifier, e.g. "discord".
	Name() string

	// AuthorizationURL builds the provider authorization endpoint URL for
	// the given CSRF state and PKCE verifier. Providers without PKCE
	// support ignore the verifier.
	AuthorizationURL(state, codeVerifier string) (*url.URL, error)

	// FetchUserData exchanges the authorization code (plus verifier) for an
	// access token, fetches the provider's current-user endpoint, and maps
	// the result into a normalized ProviderProfile.
	FetchUserData(ctx context.Context, code, codeVerifier string) (ProviderProfile, error)
}

// Registry selects providers by name. Built once at startup; lookups during
// request handling never mutate it.
type Registry map[string]Provider

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		r[p.Name()] = p
	}
	return r
}

// Get returns the named provider, or ErrProviderNotSupported.
func (r Registry) Get(name string) (Provider, error) {
	p, ok := r[name]
	if !ok {
		return nil, ErrProviderNotSupported
	}
	return p, nil
}
