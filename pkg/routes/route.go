// Package routes declares HTTP route groups and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI, when set, documents the route in the generated API description.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
