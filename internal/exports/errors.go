package exports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/storage"
)

// Domain errors for export operations.
var (
	ErrNotFound    = errors.New("export not found")
	ErrInvalidName = errors.New("invalid export name")
)

// MapHTTPStatus maps export errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	}
	return storage.MapHTTPStatus(err)
}
