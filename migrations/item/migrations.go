// Package item embeds the Postgres schema for the item store.
package item

import (
	"embed"

	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

// Migrate brings the items schema at dbURL up to date.
func Migrate(dbURL string, log logger.Logger) error {
	return migrator.RunMigrations(dbURL, MigrationsFS, log)
}
