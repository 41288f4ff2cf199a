// Package migrations embeds the goose SQL migrations so binaries can apply
// the schema without the source tree.
package migrations

import "embed"

// FS holds every *.sql migration at the package root.
//
//go:embed *.sql
var FS embed.FS
