package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authmodule "github.com/dmitrymomot/authkit/modules/auth"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/session"
)

type appConfig struct {
	// Secret is mixed into password digests; rotating it invalidates every
	// stored password.
	Secret string `env:"AUTH_SECRET,required"`
}

func main() {
	var (
		appCfg     appConfig
		pgCfg      pg.Config
		httpCfg    httpserver.Config
		sessionCfg session.Config
		moduleCfg  authmodule.Config
		googleCfg  auth.GoogleConfig
		githubCfg  auth.GitHubConfig
		discordCfg auth.DiscordConfig
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&moduleCfg)
	config.MustLoad(&googleCfg)
	config.MustLoad(&githubCfg)
	config.MustLoad(&discordCfg)

	logOpts := []logger.Option{logger.WithDevelopment("authkit")}
	if moduleCfg.Production {
		logOpts = []logger.Option{logger.WithProduction("authkit")}
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.Error("failed to apply migrations", logger.Error(err))
		os.Exit(1)
	}

	hasher, err := password.New(appCfg.Secret)
	if err != nil {
		log.Error("invalid auth secret", logger.Error(err))
		os.Exit(1)
	}

	var providers []auth.Provider
	if googleCfg.ClientID != "" && googleCfg.ClientSecret != "" {
		providers = append(providers, auth.NewGoogleProvider(googleCfg))
	}
	if githubCfg.ClientID != "" && githubCfg.ClientSecret != "" {
		providers = append(providers, auth.NewGitHubProvider(githubCfg))
	}
	if discordCfg.ClientID != "" && discordCfg.ClientSecret != "" {
		providers = append(providers, auth.NewDiscordProvider(discordCfg))
	}
	registry := auth.NewRegistry(providers...)
	for name := range registry {
		log.Info("oauth provider enabled", logger.Provider(name))
	}

	storage := auth.NewPostgresStorage(pool)
	linker := auth.NewLinker(storage, auth.WithLinkerLogger(log))

	cookies := cookie.New()
	transport := session.NewCompositeTransport(
		session.NewCookieTransport(cookies, sessionCfg.CookieName, sessionCfg.SecureCookies),
		session.NewHeaderTransport("Authorization"),
	)
	sessions := session.NewManager(session.NewPostgresStore(pool),
		session.WithTTL(sessionCfg.TTL),
		session.WithTransport(transport),
		session.WithLogger(log),
	)

	module := authmodule.NewModule(
		moduleCfg,
		registry,
		linker,
		storage,
		hasher,
		sessions,
		transport,
		cookies,
		authmodule.WithModuleLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := pg.Healthcheck(pool)(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/", module.Router())

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
