package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/arvelie/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/today
//	GET    /api/v1/convert/{date}        ?offset=N
//	GET    /api/v1/season                ?date=&hour=&names=&traditional=
//	GET    /api/v1/entries               ?year=Y[&month=L]
//	GET    /api/v1/entries/stats
//	GET    /api/v1/entries/{id}
//	POST   /api/v1/entries               (API key)
//	DELETE /api/v1/entries/{id}          (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/today", handlers.GetToday)
		r.Get("/convert/{date}", handlers.Convert)
		r.Get("/season", handlers.GetSeason)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", handlers.ListEntries)
			r.Get("/stats", handlers.GetEntryStats)
			r.Get("/{id}", handlers.GetEntry)

			// ==================================================================
			// Write routes (API key)
			// ==================================================================
			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(cfg, logger))
				r.Post("/", handlers.CreateEntry)
				r.Delete("/{id}", handlers.DeleteEntry)
			})
		})
	})

	return r
}
