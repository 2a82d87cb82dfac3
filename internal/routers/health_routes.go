package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewprep/api/internal/handlers"
	"interviewprep/api/internal/metrics"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/health", healthHandler.HealthzHandler)
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
}

func MetricsRoutes(router *chi.Mux) {
	router.Method("GET", "/metrics", metrics.Handler())
}
