package auth

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/users"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// Domain errors for authentication operations.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MapHTTPStatus maps authentication errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, users.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, handlers.ErrInvalidBody), validation.IsError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
