package prompts

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys        System
	tags       tags.System
	validate   *validation.Validator
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler. The tag system is used to verify
// ownership of tags being attached to a prompt.
func NewHandler(
	sys System,
	tagSys tags.System,
	validate *validation.Validator,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		tags:       tagSys,
		validate:   validate,
		logger:     logger.With("handler", "prompts"),
		pagination: pagination,
	}
}

// Routes returns the route groups for prompt and search endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Schemas: Spec.Schemas(),
		Children: []routes.Group{
			{
				Prefix: "/prompts",
				Tags:   []string{"Prompts"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
					{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
					{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
					{Method: "POST", Pattern: "/{id}/favorite", Handler: h.ToggleFavorite, OpenAPI: Spec.ToggleFavorite},
					{Method: "GET", Pattern: "/{id}/tags", Handler: h.Tags, OpenAPI: Spec.Tags},
					{Method: "POST", Pattern: "/{id}/tags", Handler: h.Attach, OpenAPI: Spec.Attach},
					{Method: "DELETE", Pattern: "/{id}/tags/{tagId}", Handler: h.Detach, OpenAPI: Spec.Detach},
				},
			},
			{
				Prefix: "/search",
				Tags:   []string{"Prompts"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Search, OpenAPI: Spec.Search},
				},
			},
		},
	}
}

// List returns the caller's prompts, most recently updated first.
// Supports favorites=true and tag=<id> filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), userID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	respondPage(w, result)
}

// Search returns the caller's prompts whose content or title contains q.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrQueryRequired)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Search(r.Context(), userID, q, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	respondPage(w, result)
}

// Create stores a new prompt owned by the caller.
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

	if strings.TrimSpace(cmd.Content) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrContentRequired)
		return
	}

	if err := h.validate.Validate(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Create(r.Context(), userID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"prompt": p})
}

// Find returns a single prompt owned by the caller.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	p, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"prompt": p})
}

// Update changes the provided fields of a prompt owned by the caller.
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

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	p, err := h.sys.Update(r.Context(), existing.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"prompt": p})
}

// Delete removes a prompt owned by the caller with its tag links and notes.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), existing.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, nil)
}

// ToggleFavorite flips the favorite flag of a prompt owned by the caller.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	p, err := h.sys.ToggleFavorite(r.Context(), existing.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"prompt": p})
}

// Tags returns the tags attached to a prompt owned by the caller.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	result, err := h.sys.Tags(r.Context(), existing.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"tags": result})
}

// Attach links one of the caller's tags to one of the caller's prompts.
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req AttachRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(req.TagID) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrTagRequired)
		return
	}

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	tag, err := tags.Owned(r.Context(), h.tags, userID, req.TagID)
	if err != nil {
		handlers.RespondError(w, h.logger, tags.MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.Attach(r.Context(), existing.ID, tag.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, nil)
}

// Detach unlinks a tag from a prompt owned by the caller.
func (h *Handler) Detach(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	existing, ok := h.owned(w, r, userID)
	if !ok {
		return
	}

	if err := h.sys.Detach(r.Context(), existing.ID, r.PathValue("tagId")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, nil)
}

// owned loads the {id} prompt and verifies the caller owns it,
// writing the error response when it does not.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request, userID string) (*Prompt, bool) {
	p, err := Owned(r.Context(), h.sys, userID, r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return p, true
}

func respondPage(w http.ResponseWriter, result *pagination.PageResult[Prompt]) {
	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{
		"prompts": result.Data,
		"total":   result.Total,
		"limit":   result.Limit,
		"offset":  result.Offset,
	})
}

