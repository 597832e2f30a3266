package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound        = errors.New("prompt not found")
	ErrForbidden       = errors.New("prompt belongs to another user")
	ErrContentRequired = errors.New("content is required")
	ErrQueryRequired   = errors.New("search query is required")
	ErrTagRequired     = errors.New("tagId is required")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrContentRequired),
		errors.Is(err, ErrQueryRequired),
		errors.Is(err, ErrTagRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
