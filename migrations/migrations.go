// Package migrations embeds the goose SQL migrations for every bounded context.
package migrations

import "embed"

// FS holds the *.sql migration files, applied in version order.
//
//go:embed *.sql
var FS embed.FS
