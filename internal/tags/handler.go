package tags

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// Handler provides HTTP endpoints for tag operations.
type Handler struct {
	sys        System
	validate   *validation.Validator
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, validator, logger, and pagination config.
func NewHandler(
	sys System,
	validate *validation.Validator,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		validate:   validate,
		logger:     logger.With("handler", "tags"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for tag endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/tags",
		Tags:    []string{"Tags"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

// List returns the caller's tags ordered by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), userID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{
		"tags":   result.Data,
		"total":  result.Total,
		"limit":  result.Limit,
		"offset": result.Offset,
	})
}

// Create adds a tag owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.validate.Validate(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	t, err := h.sys.Create(r.Context(), userID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"tag": t})
}

// Find returns a single tag owned by the caller.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	t, ok := h.owned(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"tag": t})
}

// Update changes the provided fields of a tag owned by the caller.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.validate.Validate(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	existing, ok := h.owned(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}

	t, err := h.sys.Update(r.Context(), existing.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"tag": t})
}

// Delete removes a tag owned by the caller and detaches it from all prompts.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	existing, ok := h.owned(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), existing.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, nil)
}

func (h *Handler) owned(w http.ResponseWriter, r *http.Request, userID, tagID string) (*Tag, bool) {
	t, err := Owned(r.Context(), h.sys, userID, tagID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return t, true
}
