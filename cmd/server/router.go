package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/festivore/festival-api/internal/api"
	apiMiddleware "github.com/festivore/festival-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	festivalHandler := api.NewFestivalHandler(app.festivalService)
	organizerHandler := api.NewOrganizerHandler(app.festivalService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Public festival views
		r.Get("/festivals", festivalHandler.List)
		r.Get("/festivals/{id}", festivalHandler.Get)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Organizer-scoped routes
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireOrganizer)

				r.Post("/festivals", festivalHandler.Create)
				r.Put("/festivals/{id}", festivalHandler.Update)
				r.Delete("/festivals/{id}", festivalHandler.Delete)
				r.Patch("/festivals/{id}/publish", festivalHandler.Publish)
				r.Get("/organizers/me/festivals", organizerHandler.MyFestivals)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
