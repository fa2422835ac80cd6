// Package pg manages the PostgreSQL connection pool and schema migrations.
//
// The pool is constructed once at startup and injected into every storage
// component; nothing in this module caches connections on package globals.
// Migrations run through goose against the same pool via the pgx stdlib
// bridge.
package pg
