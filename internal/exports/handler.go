package exports

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

// Handler provides HTTP endpoints for prompt exports.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for the given export system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "exports"),
	}
}

// Routes returns the route group definition for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/exports",
		Tags:   []string{"Exports"},
		Schemas: map[string]*openapi.Schema{
			"Export": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"name":       {Type: "string"},
					"count":      {Type: "integer"},
					"size":       {Type: "integer"},
					"created_at": {Type: "string", Format: "date-time"},
				},
			},
			"ExportEnvelope": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"success": {Type: "boolean"},
					"export":  openapi.SchemaRef("Export"),
				},
			},
		},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: createSpec},
			{Method: "GET", Pattern: "/{name}", Handler: h.Download, OpenAPI: downloadSpec},
		},
	}
}

// Create snapshots the caller's prompts into blob storage.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	export, err := h.sys.Create(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"export": export})
}

// Download streams one of the caller's exports.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	name := r.PathValue("name")

	blob, err := h.sys.Open(r.Context(), userID, name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Error("export download interrupted", "name", name, "error", err)
	}
}

var (
	session = []map[string][]string{{"session": {}}}

	createSpec = &openapi.Operation{
		Summary:     "Export prompts",
		Description: "Writes a JSON snapshot of the caller's prompts and their tag names to blob storage.",
		Security:    session,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stored export", "ExportEnvelope"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	}

	downloadSpec = &openapi.Operation{
		Summary:    "Download an export",
		Parameters: []*openapi.Parameter{openapi.PathParam("name", "Export name")},
		Security:   session,
		Responses: map[int]*openapi.Response{
			200: {Description: "Export document", Content: map[string]*openapi.MediaType{"application/json": {}}},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
)
