package prompts

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

// Share redirect markers appended to the home path.
const (
	ShareSucceeded = "shared=true"
	ShareEmpty     = "error=empty_share"
	ShareFailed    = "error=share_failed"
)

// ShareConfig holds the redirect targets and body limit for the share endpoint.
type ShareConfig struct {
	HomePath    string
	LoginPath   string
	MaxFormSize int64
}

// ShareHandler accepts form posts from a share target and stores them as prompts.
// It always answers with a 303 redirect.
type ShareHandler struct {
	sys    System
	cfg    ShareConfig
	logger *slog.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(sys System, cfg ShareConfig, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		sys:    sys,
		cfg:    cfg,
		logger: logger.With("handler", "share"),
	}
}

// Routes returns the route group definition for the share endpoint.
func (h *ShareHandler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/share",
		Tags:    []string{"Share"},
		Schemas: map[string]*openapi.Schema{
			"ShareForm": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"title": {Type: "string"},
					"text":  {Type: "string"},
					"url":   {Type: "string"},
				},
			},
		},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Share, OpenAPI: shareSpec},
		},
	}
}

// Share composes a prompt from the title, text, and url form fields.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CallerFrom(r.Context())
	if !ok {
		http.Redirect(w, r, h.cfg.LoginPath, http.StatusSeeOther)
		return
	}

	if err := h.parseForm(w, r); err != nil {
		h.logger.Warn("share form rejected", "error", err)
		h.redirectHome(w, r, ShareFailed)
		return
	}

	content, source := Compose(
		r.FormValue("title"),
		r.FormValue("text"),
		r.FormValue("url"),
	)

	if content == "" {
		h.redirectHome(w, r, ShareEmpty)
		return
	}

	p, err := h.sys.Create(r.Context(), userID, CreateCommand{
		Content: content,
		Source:  source,
	})
	if err != nil {
		h.logger.Error("share failed", "error", err)
		h.redirectHome(w, r, ShareFailed)
		return
	}

	h.logger.Info("prompt shared", "id", p.ID)
	h.redirectHome(w, r, ShareSucceeded)
}

// Compose builds prompt content and source from shared fields.
// Text seeds the content; a url is appended as its source line, or seeds the
// content when there is no text. An empty result falls back to the title,
// otherwise the title prefixes the content.
func Compose(title, text, link string) (content string, source *string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(text)
	link = strings.TrimSpace(link)

	if link != "" {
		if content != "" {
			content += "\n\nSource: " + link
		} else {
			content = "Shared from: " + link
		}
		source = &link
	}

	switch {
	case content == "":
		content = title
	case title != "":
		content = title + "\n\n" + content
	}

	return content, source
}

func (h *ShareHandler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFormSize)

	err := r.ParseMultipartForm(h.cfg.MaxFormSize)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func (h *ShareHandler) redirectHome(w http.ResponseWriter, r *http.Request, marker string) {
	target, err := url.Parse(h.cfg.HomePath)
	if err != nil {
		target = &url.URL{Path: "/"}
	}

	if target.RawQuery == "" {
		target.RawQuery = marker
	} else {
		target.RawQuery += "&" + marker
	}

	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

var shareSpec = &openapi.Operation{
	Summary:     "Share into a new prompt",
	Description: "Accepts multipart or urlencoded title, text, and url fields and redirects to the home page with a result marker.",
	Security:    []map[string][]string{{"session": {}}},
	RequestBody: &openapi.RequestBody{
		Required: true,
		Content: map[string]*openapi.MediaType{
			"multipart/form-data":               {Schema: openapi.SchemaRef("ShareForm")},
			"application/x-www-form-urlencoded": {Schema: openapi.SchemaRef("ShareForm")},
		},
	},
	Responses: map[int]*openapi.Response{
		303: {Description: "Redirect to the home page, or to the login page when unauthenticated"},
	},
}
