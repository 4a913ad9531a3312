package main

import (
	"os"

	"github.com/ghuser/itemstack/migrations/item"
	"github.com/ghuser/itemstack/pkg/config"
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg)

	target, err := database.ParseTarget(cfg.DatabaseURL)
	if err != nil {
		log.Error("invalid DATABASE_URL", "error", err)
		os.Exit(1)
	}
	if target.Kind() != database.KindPostgres {
		log.Info("no schema migrations for this store", "kind", string(target.Kind()))
		return
	}

	if err := item.Migrate(target.URI(), log); err != nil {
		log.Error("migrations failed", "target", target.Redacted(), "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "target", target.Redacted())
}
