package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/festivore/festival-api/internal/config"
	"github.com/festivore/festival-api/internal/platform/postgres"
	"github.com/festivore/festival-api/internal/service"
	"github.com/festivore/festival-api/internal/service/auth"
	"github.com/festivore/festival-api/internal/store"
)

// application bundles the wired dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	tokenService    auth.TokenService
	authService     *service.AuthService
	festivalService *service.FestivalService
}

// newApplication wires stores, services and auth components from the
// loaded configuration and an open database handle.
func newApplication(cfg *config.Config, db *sql.DB, logr *slog.Logger) (*application, error) {
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	var userStore store.UserStore = postgres.NewPostgresUserStore(db, logr)
	var profileStore store.OrganizerProfileStore = postgres.NewPostgresOrganizerProfileStore(db, logr)
	var festivalStore store.FestivalStore = postgres.NewPostgresFestivalStore(db, logr)

	hasher := auth.NewBcryptHasher()

	authService := service.NewAuthService(
		store.NewTxRunner(db),
		userStore,
		profileStore,
		tokenService,
		hasher,
		hasher,
		logr,
	)

	organizerService := service.NewOrganizerService(profileStore)
	festivalService := service.NewFestivalService(festivalStore, organizerService, logr)

	return &application{
		config:          cfg,
		logger:          logr,
		db:              db,
		tokenService:    tokenService,
		authService:     authService,
		festivalService: festivalService,
	}, nil
}
