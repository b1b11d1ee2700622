// Package migrations embeds the SQL schema scripts applied at start-up.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
