// Package main implements the entry point for the festival API server:
// organizer registration and login, festival management, and the public
// festival listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/festivore/festival-api/internal/config"
	"github.com/festivore/festival-api/internal/platform/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// A missing .env is fine; the environment can carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.Setup(cfg.Server.LogLevel)
	logr.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, logr)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logr.Error("failed to close database", "error", err)
		}
	}()

	if err := runMigrations(db, logr); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if *migrateOnly {
		logr.Info("migrations applied, exiting")
		return
	}

	app, err := newApplication(cfg, db, logr)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	slog.Info(fmt.Sprintf("festival API server on port %d stopped", cfg.Server.Port))
}
