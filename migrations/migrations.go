// Package migrations embeds the SQL schema migrations of every storage driver.
package migrations

import "embed"

const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
