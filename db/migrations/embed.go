// Package migrations embeds the schema for every supported dialect. Each dialect lives in
// its own directory named after the configured database driver.
package migrations

import "embed"

// FS holds the goose SQL files.
//
//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
