package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"calculator-bdd/internal/handlers"
	"calculator-bdd/internal/observability"
	"calculator-bdd/internal/scenario"
)

// NewRouter wires the health, metrics and scenario endpoints. maxBodyBytes
// caps the feature text accepted by /scenarios/run.
func NewRouter(maxBodyBytes int64) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	scenario.RegisterRoutes(r, scenario.NewHandler(scenario.NewCalculatorRegistry(), maxBodyBytes))

	return r
}
