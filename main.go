// Package main is the entry point for the organization domain service.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"domainguard/src/app/server"
	"domainguard/src/infra/config"
	"domainguard/src/infra/db"
	"domainguard/src/infra/i18n"
	"domainguard/src/infra/logger"
	"domainguard/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Database.Migrate {
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
	}

	bundle, err := i18n.LoadEmbedded(cfg.Auth.DefaultLocale)
	if err != nil {
		return err
	}

	store := repo.NewPostgresRepository(pg, logger.WithComponent(log, "repo"))

	// Create and run HTTP server
	srv := server.New(cfg, log, store, bundle)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
