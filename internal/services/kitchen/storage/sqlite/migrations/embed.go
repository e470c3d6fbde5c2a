// Package migrations embeds the kitchen schema.
package migrations

import "embed"

// FS holds the kitchen SQL migrations.
//
//go:embed *.sql
var FS embed.FS
