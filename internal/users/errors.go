package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("email already registered")
)

// MapHTTPStatus maps user domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
