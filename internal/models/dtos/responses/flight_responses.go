package responses

import "flight-tracker/flightboard/internal/models/entities"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type DeleteFlightResponse struct {
	Message string           `json:"message"`
	Flight  *entities.Flight `json:"flight"`
}
