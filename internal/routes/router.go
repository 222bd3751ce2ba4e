package routes

import (
	"net/http"

	"flight-tracker/flightboard/internal/api"
	"flight-tracker/flightboard/internal/config"
	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/metrics"
	"flight-tracker/flightboard/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Config      *config.Config
	Deps        *api.Dependencies
	Metrics     *metrics.MetricsRegistry
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(opts RouterOptions) http.Handler {
	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Recoverer(opts.Config.IsProduction()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Config.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(middleware.MetricsMiddleware(opts.Metrics))

	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	RegisterAPIRoutes(r, api.NewHandlers(opts.Deps), opts.RateLimiter)

	if opts.Config.IsProduction() {
		logging.Info("Serving static client assets", "dir", opts.Config.Server.StaticDir)
		r.NotFound(api.SPAHandler(opts.Config.Server.StaticDir).ServeHTTP)
	}

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
