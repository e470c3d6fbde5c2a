// Package migrations embeds the notifications outbox schema.
package migrations

import "embed"

// FS holds the notifications SQL migrations.
//
//go:embed *.sql
var FS embed.FS
