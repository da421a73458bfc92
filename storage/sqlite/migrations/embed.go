package migrations

import "embed"

// FS contains embedded SQLite migrations for preset storage.
//
//go:embed *.sql
var FS embed.FS
