// Package migrations holds the goose migrations for the products and homepage_config tables.
package migrations

import "embed"

// FS carries the SQL files so binaries run without the source tree
//
//go:embed *.sql
var FS embed.FS
