// Package migrations embeds the goose SQL migrations so the server can
// apply them on startup without shipping the files separately.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
