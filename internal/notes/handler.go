package notes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// Handler provides HTTP endpoints for note operations.
type Handler struct {
	sys      System
	prompts  prompts.System
	validate *validation.Validator
	logger   *slog.Logger
}

// NewHandler creates a Handler. The prompt system resolves note ownership.
func NewHandler(
	sys System,
	promptSys prompts.System,
	validate *validation.Validator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sys:      sys,
		prompts:  promptSys,
		validate: validate,
		logger:   logger.With("handler", "notes"),
	}
}

// Routes returns the route group definition for note endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:    []string{"Notes"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/prompts/{id}/notes", Handler: h.List, OpenAPI: listSpec},
			{Method: "POST", Pattern: "/prompts/{id}/notes", Handler: h.Create, OpenAPI: createSpec},
			{Method: "GET", Pattern: "/notes/{id}", Handler: h.Find, OpenAPI: findSpec},
			{Method: "PUT", Pattern: "/notes/{id}", Handler: h.Update, OpenAPI: updateSpec},
			{Method: "DELETE", Pattern: "/notes/{id}", Handler: h.Delete, OpenAPI: deleteSpec},
		},
	}
}

// List returns the notes of a prompt owned by the caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedPrompt(w, r)
	if !ok {
		return
	}

	notes, err := h.sys.List(r.Context(), p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"notes": notes})
}

// Create adds a note to a prompt owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.decode(w, r)
	if !ok {
		return
	}

	p, ok := h.ownedPrompt(w, r)
	if !ok {
		return
	}

	n, err := h.sys.Create(r.Context(), p.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"note": n})
}

// Find returns a note whose prompt the caller owns.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	n, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"note": n})
}

// Update replaces the content of a note whose prompt the caller owns.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.decode(w, r)
	if !ok {
		return
	}

	existing, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	n, err := h.sys.Update(r.Context(), existing.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"note": n})
}

// Delete removes a note whose prompt the caller owns.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), existing.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, nil)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Command, bool) {
	if _, ok := auth.RequireCaller(w, r, h.logger); !ok {
		return Command{}, false
	}

	var cmd Command
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return Command{}, false
	}

	if strings.TrimSpace(cmd.Content) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrContentRequired)
		return Command{}, false
	}

	if err := h.validate.Validate(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return Command{}, false
	}

	return cmd, true
}

func (h *Handler) ownedPrompt(w http.ResponseWriter, r *http.Request) (*prompts.Prompt, bool) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return nil, false
	}

	p, err := prompts.Owned(r.Context(), h.prompts, userID, r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, prompts.MapHTTPStatus(err), err)
		return nil, false
	}
	return p, true
}

func (h *Handler) ownedNote(w http.ResponseWriter, r *http.Request) (*Note, bool) {
	userID, ok := auth.RequireCaller(w, r, h.logger)
	if !ok {
		return nil, false
	}

	n, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}

	if _, err := prompts.Owned(r.Context(), h.prompts, userID, n.PromptID); err != nil {
		handlers.RespondError(w, h.logger, prompts.MapHTTPStatus(err), err)
		return nil, false
	}

	return n, true
}
