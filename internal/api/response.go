package api

import (
	"encoding/json"
	"net/http"

	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/models/dtos/responses"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, statusCode int, title, message string) {
	respondWithJSON(w, statusCode, responses.ErrorResponse{Error: title, Message: message})
}

// respondWithStorageError logs err and sends a 500 whose message is the
// error text in development and a generic phrase in production.
func (h *Handlers) respondWithStorageError(w http.ResponseWriter, r *http.Request, title string, err error) {
	logging.Error(title, "path", r.URL.Path, "method", r.Method, "error", err)

	message := constants.MsgSomethingWentWrong
	if !h.deps.Production {
		message = err.Error()
	}
	respondWithError(w, http.StatusInternalServerError, title, message)
}
