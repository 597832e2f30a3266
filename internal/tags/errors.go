package tags

import (
	"errors"
	"net/http"
)

// Domain errors for tag operations.
var (
	ErrNotFound     = errors.New("tag not found")
	ErrDuplicate    = errors.New("tag name already exists")
	ErrForbidden    = errors.New("tag belongs to another user")
	ErrNameRequired = errors.New("name is required")
)

// MapHTTPStatus maps tag domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNameRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
