// Package config loads env-tagged structs from the process environment.
//
// A .env file in the working directory is read once per process before the
// first parse, which keeps local development friction-free without affecting
// deployed environments where real variables are set.
//
//	type SessionConfig struct {
//		CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"auth_token"`
//		TTL        time.Duration `env:"SESSION_TTL" envDefault:"720h"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
package config
