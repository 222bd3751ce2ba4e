package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError prefers the body's message, then its error title, then a
// status line.
func newAPIError(resp *http.Response, body []byte) *APIError {
	statusText := http.StatusText(resp.StatusCode)
	apiErr := &APIError{Status: resp.StatusCode, StatusText: statusText}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	switch {
	case payload.Message != "":
		apiErr.Message = payload.Message
	case payload.Error != "":
		apiErr.Message = payload.Error
	default:
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText)
	}
	return apiErr
}
