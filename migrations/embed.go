// Package migrations embeds the goose SQL migrations for the Postgres slot
// backend, so the server, the CLI and the tests migrate without a filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
