package main

import (
	"github.com/rs/zerolog/log"

	"runcoach/backend/internal/config"
	"runcoach/backend/internal/db"
	"runcoach/backend/internal/handler"
	"runcoach/backend/internal/observability"
	"runcoach/backend/internal/repository"
	"runcoach/backend/internal/router"
	"runcoach/backend/internal/service"
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

	userRepo := repository.NewUserRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	runRepo := repository.NewRunRepository(database)
	assessmentRepo := repository.NewAssessmentRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	planService := service.NewPlanService(goalRepo, runRepo, assessmentRepo, cfg.PlanSeed)
	athleteService := service.NewAthleteService(goalRepo, runRepo, assessmentRepo)

	engine := router.New(authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Plan:    handler.NewPlanHandler(planService),
		Athlete: handler.NewAthleteHandler(athleteService),
	}, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	log.Info().Str("port", cfg.Port).Bool("metrics", cfg.MetricsEnabled).Msg("runcoach backend listening")
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}
