// Package migrations embeds the versioned planner schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
