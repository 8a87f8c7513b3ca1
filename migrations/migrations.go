// Package migrations embeds the schema for the optional tariff database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
