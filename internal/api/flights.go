package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/db/repositories"
	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/dtos/responses"
	"flight-tracker/flightboard/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// parseFlightID rejects anything that is not a base-10 integer, so "12abc"
// never reaches storage.
func parseFlightID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, constants.ErrInvalidFlightID, constants.MsgFlightIDNotNumber)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody, err.Error())
		return false
	}
	return true
}

// handleFlightError maps service errors onto 400, 404 or 500.
func (h *Handlers) handleFlightError(w http.ResponseWriter, r *http.Request, id int64, title string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, constants.ErrInvalidFlightData, verr.Message)
	case errors.Is(err, repositories.ErrFlightNotFound):
		respondWithError(w, http.StatusNotFound, constants.ErrFlightNotFound, fmt.Sprintf(constants.MsgFlightNotFoundFmt, id))
	default:
		h.respondWithStorageError(w, r, title, err)
	}
}

// ListFlights handles GET /api/flights
func (h *Handlers) ListFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := h.deps.Flights.List(r.Context())
		if err != nil {
			h.respondWithStorageError(w, r, constants.ErrFetchFlights, err)
			return
		}
		respondWithJSON(w, http.StatusOK, flights)
	}
}

// GetFlight handles GET /api/flights/{id}
func (h *Handlers) GetFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseFlightID(w, r)
		if !ok {
			return
		}

		flight, err := h.deps.Flights.Get(r.Context(), id)
		if err != nil {
			h.handleFlightError(w, r, id, constants.ErrFetchFlight, err)
			return
		}
		respondWithJSON(w, http.StatusOK, flight)
	}
}

// CreateFlight handles POST /api/flights
func (h *Handlers) CreateFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in dtos.NewFlightInput
		if !decodeBody(w, r, &in) {
			return
		}

		flight, err := h.deps.Flights.Create(r.Context(), &in)
		if err != nil {
			h.handleFlightError(w, r, 0, constants.ErrCreateFlight, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, flight)
	}
}

// UpdateFlight handles PUT /api/flights/{id}
func (h *Handlers) UpdateFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseFlightID(w, r)
		if !ok {
			return
		}

		var in dtos.FlightUpdateInput
		if !decodeBody(w, r, &in) {
			return
		}

		flight, err := h.deps.Flights.Update(r.Context(), id, &in)
		if err != nil {
			h.handleFlightError(w, r, id, constants.ErrUpdateFlight, err)
			return
		}
		respondWithJSON(w, http.StatusOK, flight)
	}
}

// DeleteFlight handles DELETE /api/flights/{id}
func (h *Handlers) DeleteFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseFlightID(w, r)
		if !ok {
			return
		}

		flight, err := h.deps.Flights.Delete(r.Context(), id)
		if err != nil {
			h.handleFlightError(w, r, id, constants.ErrDeleteFlight, err)
			return
		}
		respondWithJSON(w, http.StatusOK, responses.DeleteFlightResponse{
			Message: constants.MsgFlightDeleted,
			Flight:  flight,
		})
	}
}
