package auth

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Module bundles the identity core behind a chi router.
type Module struct {
	cfg       Config
	providers auth.Registry
	linker    *auth.Linker
	storage   auth.Storage
	hasher    *password.Hasher
	sessions  *session.Manager
	transport session.Transport
	cookies   *cookie.Manager
	logger    *slog.Logger
}

// ModuleOption configures a Module during construction.
type ModuleOption func(*Module)

// WithModuleLogger sets a custom logger.
func WithModuleLogger(l *slog.Logger) ModuleOption {
	return func(m *Module) {
		m.logger = l
	}
}

// NewModule assembles the auth HTTP module. The session manager must be
// built with the same transport so refreshes and handler writes agree on
// the cookie.
func NewModule(
	cfg Config,
	providers auth.Registry,
	linker *auth.Linker,
	storage auth.Storage,
	hasher *password.Hasher,
	sessions *session.Manager,
	transport session.Transport,
	cookies *cookie.Manager,
	opts ...ModuleOption,
) *Module {
	m := &Module{
		cfg:       cfg,
		providers: providers,
		linker:    linker,
		storage:   storage,
		hasher:    hasher,
		sessions:  sessions,
		transport: transport,
		cookies:   cookies,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router returns the module's routes, mountable at the application root.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/", m.handleSession)
		r.Post("/sign-in", m.handleSignIn)
		r.Post("/sign-out", m.handleSignOut)

		r.Route("/oauth/{provider}", func(r chi.Router) {
			r.Get("/", m.handleOAuthStart)
			r.Get("/callback", m.handleOAuthCallback)
		})
	})

	return r
}

// corsMiddleware mirrors the permissive policy of the upstream API: the
// token rides in a cookie or bearer header, never in an ambient credential,
// so a wildcard origin is safe here.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
