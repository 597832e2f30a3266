// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const internalErrorMessage = "Internal server error"

// ErrInvalidBody indicates a request body that is not valid JSON for the target type.
var ErrInvalidBody = errors.New("invalid request body")

// Payload is a success envelope body. RespondSuccess adds "success": true.
type Payload map[string]any

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondSuccess writes {"success": true} merged with payload.
func RespondSuccess(w http.ResponseWriter, status int, payload Payload) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	RespondJSON(w, status, body)
}

// RespondError writes {"error": message} with the given status code.
// Server errors are logged and replaced with a generic message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		message = internalErrorMessage
	}

	RespondJSON(w, status, map[string]string{"error": message})
}

// DecodeJSON decodes the request body into v, returning ErrInvalidBody on malformed input.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrInvalidBody
	}
	return nil
}
