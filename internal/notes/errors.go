package notes

import (
	"errors"
	"net/http"
)

// Domain errors for note operations.
var (
	ErrNotFound        = errors.New("note not found")
	ErrContentRequired = errors.New("content is required")
)

// MapHTTPStatus maps note domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrContentRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
