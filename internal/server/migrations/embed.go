// Package migrations embeds the SQL migrations for the server database,
// including the demo directory seed.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
