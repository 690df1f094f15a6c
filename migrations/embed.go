// Package migrations embeds the versioned schema applied at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
