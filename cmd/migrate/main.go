package main

import (
	"github.com/rs/zerolog/log"

	"runcoach/backend/internal/config"
	"runcoach/backend/internal/db"
	"runcoach/backend/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	observability.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	log.Info().Str("db", cfg.DBPath).Msg("migrations applied successfully")
}
