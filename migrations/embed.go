// Package migrations embeds the SQL schema migrations, one directory per
// SQL dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql mysql/*.sql postgres/*.sql
var migrationFS embed.FS

// FS provides access to the embedded migration files.
var FS fs.FS = migrationFS
