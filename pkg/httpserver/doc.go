// Package httpserver wraps net/http.Server with graceful shutdown on
// SIGINT/SIGTERM or context cancellation, functional-option configuration,
// and structured logging hooks.
package httpserver
