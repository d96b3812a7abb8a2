// Package main is the entry point for the team roster API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"teamroster/src/app/server"
	"teamroster/src/core/ports"
	"teamroster/src/infra/config"
	"teamroster/src/infra/db"
	"teamroster/src/infra/logger"
	"teamroster/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from .env and environment variables
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

	// Apply schema migrations before the pool starts serving queries
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, cfg.Database.DSN(), logger.WithComponent(log, "migrate")); err != nil {
			return err
		}
	}

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Initialize repositories
	repoLog := logger.WithComponent(log, "repo")
	members := repo.NewMemberRepository(pg, repoLog)
	teams := repo.NewTeamRepository(pg, repoLog)

	// Create and run HTTP server
	srv := server.New(cfg, log, server.Deps{
		Members: members,
		Teams:   teams,
		Tx:      pg,
		Health:  map[string]ports.HealthChecker{"members": members, "teams": teams},
	})

	// Run blocks until shutdown signal is received
	return srv.Run()
}
