// Package migrations holds the goose SQL migrations for the tasks schema.
package migrations

import "embed"

// FS contains every migration file. Pass it to goose.SetBaseFS and use "."
// as the migration directory.
//
//go:embed *.sql
var FS embed.FS
