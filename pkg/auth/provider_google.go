package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleConfig holds configuration for the Google OAuth provider.
type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string   `env:"GOOGLE_REDIRECT_URL"`
	Scopes       []string `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,profile,email"`
}

type googleProvider struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleProvider creates a Google OAuth provider adapter with PKCE.
func NewGoogleProvider(cfg GoogleConfig) Provider {
	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *googleProvider) Name() string {
	return ProviderGoogle
}

func (p *googleProvider) AuthorizationURL(state, codeVerifier string) (*url.URL, error) {
	return url.Parse(p.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(codeVerifier)))
}

func (p *googleProvider) FetchUserData(ctx context.Context, code, codeVerifier string) (ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.conf.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://openidconnect.googleapis.com/v1/userinfo", nil)
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, fmt.Errorf("google api returned status %d", resp.StatusCode))
	}

	// https://developers.google.com/identity/protocols/oauth2/openid-connect#obtainuserinfo
	var user struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	return ProviderProfile{
		ProviderAccountID: user.Sub,
		Name:              user.Name,
		Email:             user.Email,
		Image:             user.Picture,
	}, nil
}

var _ Provider = (*googleProvider)(nil)
