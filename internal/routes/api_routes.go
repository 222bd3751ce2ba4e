package routes

import (
	"flight-tracker/flightboard/internal/api"
	"flight-tracker/flightboard/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes mounts the /api tree
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api", func(apiRouter chi.Router) {
		if limiter != nil {
			apiRouter.Use(limiter.Middleware)
		}

		apiRouter.Get("/health", handlers.Health())
		apiRouter.Get("/health/ready", handlers.Readiness())

		apiRouter.Route("/flights", func(flights chi.Router) {
			flights.Get("/", handlers.ListFlights())
			flights.Post("/", handlers.CreateFlight())
			flights.Get("/{id}", handlers.GetFlight())
			flights.Put("/{id}", handlers.UpdateFlight())
			flights.Delete("/{id}", handlers.DeleteFlight())
		})

		apiRouter.NotFound(api.NotFound)
	})
}
