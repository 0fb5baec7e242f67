// Package migrations embeds the goose SQL migrations so the server can
// apply them at startup without shipping separate files.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
