package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tasknest/tasknest-api/internal/api"
	apimiddleware "github.com/tasknest/tasknest-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(apimiddleware.MetricsMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints; the task id travels in the request body
			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks", taskHandler.Toggle)
			r.Patch("/tasks", taskHandler.Patch)
			r.Delete("/tasks", taskHandler.Delete)

			// Account endpoints
			r.Delete("/account", accountHandler.DeleteAccount)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
