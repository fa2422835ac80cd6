// Package logger builds configured slog.Logger instances with consistent
// output formats and attribute helpers shared across the auth services.
//
// Production defaults to JSON at info level for log aggregation; development
// switches to text at debug level. Attribute helpers (Error, UserID,
// Component, Provider) keep field names uniform so server-side log queries
// stay simple.
package logger
