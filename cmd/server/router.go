package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/story-api/internal/api"
	apiMiddleware "github.com/phrazzld/story-api/internal/api/middleware"
	"github.com/phrazzld/story-api/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger)) // request logging with trace IDs
	r.Use(app.corsMiddleware().Handler)

	storyHandler := api.NewStoryHandler(app.storyService, app.logger)

	r.Post("/generate-story", storyHandler.GenerateStory)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

func (app *application) corsMiddleware() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders: []string{shared.TraceIDHeader},
	})
}
