package middleware

import (
	"encoding/json"
	"net/http"

	"flight-tracker/flightboard/internal/models/dtos/responses"
)

func writeError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(responses.ErrorResponse{Error: title, Message: message})
}
