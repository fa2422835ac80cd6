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
	"golang.org/x/oauth2/endpoints"
)

// DiscordConfig holds configuration for the Discord OAuth provider.
type DiscordConfig struct {
	ClientID     string   `env:"DISCORD_CLIENT_ID"`
	ClientSecret string   `env:"DISCORD_CLIENT_SECRET"`
	RedirectURL  string   `env:"DISCORD_REDIRECT_URL"`
	Scopes       []string `env:"DISCORD_SCOPES" envSeparator:"," envDefault:"identify,email"`
}

type discordProvider struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewDiscordProvider creates a Discord OAuth provider adapter. Discord
// supports PKCE, so the verifier is bound to both the authorization URL and
// the token exchange.
func NewDiscordProvider(cfg DiscordConfig) Provider {
	return &discordProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoints.Discord,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *discordProvider) Name() string {
	return ProviderDiscord
}

func (p *discordProvider) AuthorizationURL(state, codeVerifier string) (*url.URL, error) {
	return url.Parse(p.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(codeVerifier)))
}

func (p *discordProvider) FetchUserData(ctx context.Context, code, codeVerifier string) (ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.conf.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://discord.com/api/users/@me", nil)
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
		return ProviderProfile{}, errors.Join(ErrFetchUserData, fmt.Errorf("discord api returned status %d", resp.StatusCode))
	}

	// https://discord.com/developers/docs/resources/user#get-current-user
	var user struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return ProviderProfile{}, errors.Join(ErrFetchUserData, err)
	}

	return ProviderProfile{
		ProviderAccountID: user.ID,
		Name:              user.Username,
		Email:             user.Email,
		Image:             fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", user.ID, user.Avatar),
	}, nil
}

var _ Provider = (*discordProvider)(nil)
