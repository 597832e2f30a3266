package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/users"
	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=1024"`
	Name     *string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler provides the register, login, logout, and me endpoints.
type Handler struct {
	users    users.System
	provider Provider
	cookie   CookieConfig
	validate *validation.Validator
	logger   *slog.Logger
}

// NewHandler creates an auth Handler.
func NewHandler(
	usersSys users.System,
	provider Provider,
	cookie CookieConfig,
	validate *validation.Validator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		users:    usersSys,
		provider: provider,
		cookie:   cookie,
		validate: validate,
		logger:   logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/auth",
		Tags:    []string{"Auth"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout, OpenAPI: Spec.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.Me, OpenAPI: Spec.Me},
		},
	}
}

// Register creates an account and starts a session for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	u, err := h.users.Create(r.Context(), users.CreateCommand{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.startSession(w, r, *u)
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	creds, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			rejectPassword(req.Password)
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrInvalidCredentials)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if !VerifyPassword(creds.PasswordHash, req.Password) {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	h.startSession(w, r, creds.User)
}

// Logout revokes the presented session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Invalidate(r.Context(), CredentialFrom(r, h.cookie.Name)); err != nil {
		h.logger.Error("session invalidation failed", "error", err)
	}

	ClearSessionCookie(w, h.cookie)
	handlers.RespondSuccess(w, http.StatusOK, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	u, err := h.users.Find(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthenticated)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"user": u})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, u users.User) {
	session, err := h.provider.Issue(r.Context(), u)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	SetSessionCookie(w, h.cookie, session)
	handlers.RespondSuccess(w, http.StatusOK, handlers.Payload{"user": u})
}
