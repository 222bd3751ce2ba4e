package api

import (
	"context"
	"net/http"
	"time"

	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/models/entities"
)

// Health handles GET /api/health. It never touches a dependency.
func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, entities.HealthResponse{
			Status:      string(constants.APIStatusOk),
			Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
			Environment: h.deps.Environment,
		})
	}
}

// Readiness handles GET /api/health/ready
func (h *Handlers) Readiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		ctx, cancel := context.WithTimeout(r.Context(), h.deps.PingTimeout)
		defer cancel()

		services["postgres"] = checkService(ctx, h.deps.DB, "Database connected")
		if h.deps.Cache != nil {
			services["redis"] = checkService(ctx, h.deps.Cache, "Redis connected")
		}

		overallStatus := string(constants.APIStatusOk)
		for _, svc := range services {
			if svc.Status != string(constants.APIStatusOk) {
				overallStatus = string(constants.APIStatusDown)
				break
			}
		}

		code := http.StatusOK
		if overallStatus != string(constants.APIStatusOk) {
			code = http.StatusServiceUnavailable
		}

		respondWithJSON(w, code, entities.ReadinessResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  h.deps.UpSince,
			Uptime:   time.Since(h.deps.UpSince).Round(time.Second).String(),
		})
	}
}

func checkService(ctx context.Context, p Pinger, okDetails string) entities.ServiceStatus {
	if err := p.PingContext(ctx); err != nil {
		return entities.ServiceStatus{Status: string(constants.APIStatusDown), Details: err.Error()}
	}
	return entities.ServiceStatus{Status: string(constants.APIStatusOk), Details: okDetails}
}

// NotFound answers unknown /api paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, constants.ErrAPIEndpointNotFound, "")
}
