package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubConfig holds configuration for the GitHub OAuth provider.
type GitHubConfig struct {
	ClientID     string   `env:"GITHUB_CLIENT_ID"`
	ClientSecret string   `env:"GITHUB_CLIENT_SECRET"`
	RedirectURL  string   `env:"GITHUB_REDIRECT_URL"`
	Scopes       []string `env:"GITHUB_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

type githubProvider struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGitHubProvider creates a GitHub OAuth provider adapter. GitHub's web
// flow has no PKCE support, so the verifier is ignored.
func NewGitHubProvider(cfg GitHubConfig) Provider {
	return &githubProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *githubProvider) Name() string {
	return ProviderGithub
}

func (p *githubProvider) AuthorizationURL(state, _ string) (*url.URL, error) {
	return url.Parse(p.conf.AuthCodeURL(state))
}

func (p *githubProvider) FetchUserData(ctx context.Context, code, _ string) (ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	user, err := p.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	email := user.Email
	if email == "" {
		// The profile email is often private; the emails endpoint always
		// lists the primary address.
		email, err = p.fetchPrimaryEmail(ctx, tok.AccessToken)
		if err != nil {
			return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
		}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return ProviderProfile{
		ProviderAccountID: strconv.FormatInt(user.ID, 10),
		Name:              name,
		Email:             email,
		Image:             user.AvatarURL,
	}, nil
}

type ghUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func (p *githubProvider) fetchUser(ctx context.Context, accessToken string) (*ghUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var user ghUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *githubProvider) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user/emails", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", fmt.Errorf("github profile has no email")
}

var _ Provider = (*githubProvider)(nil)
