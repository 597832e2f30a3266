package prompts_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/internal/testdb"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		text    string
		url     string
		content string
		source  string
	}{
		{"text and url", "", "Great tip", "http://x.example", "Great tip\n\nSource: http://x.example", "http://x.example"},
		{"url only", "", "", "http://x.example", "Shared from: http://x.example", "http://x.example"},
		{"title only", "Just a title", "", "", "Just a title", ""},
		{"title and text", "Title", "Body", "", "Title\n\nBody", ""},
		{"all three", "T", "Body", "http://x.example", "T\n\nBody\n\nSource: http://x.example", "http://x.example"},
		{"title and url", "T", "", "http://x.example", "T\n\nShared from: http://x.example", "http://x.example"},
		{"nothing", "", "", "", "", ""},
		{"whitespace", "  ", "\n", " ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, source := prompts.Compose(tt.title, tt.text, tt.url)
			assert.Equal(t, tt.content, content)
			if tt.source == "" {
				assert.Nil(t, source)
			} else {
				require.NotNil(t, source)
				assert.Equal(t, tt.source, *source)
			}
		})
	}
}

func newShareServer(sys prompts.System) http.Handler {
	h := prompts.NewShareHandler(sys, prompts.ShareConfig{
		HomePath:    "/",
		LoginPath:   "/login",
		MaxFormSize: 1 << 20,
	}, testdb.Logger())

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return withCaller(mux)
}

func postForm(srv http.Handler, user string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/share", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestShareUrlencoded(t *testing.T) {
	sys := newFakePrompts()
	srv := newShareServer(sys)

	rec := postForm(srv, "u1", url.Values{"text": {"Great tip"}, "url": {"http://x.example"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?shared=true", rec.Header().Get("Location"))

	require.Len(t, sys.created, 1)
	assert.Equal(t, "Great tip\n\nSource: http://x.example", sys.created[0].Content)
	assert.Equal(t, "http://x.example", *sys.created[0].Source)
	assert.Equal(t, "u1", sys.prompts["prompt-new"].UserID)
}

func TestShareMultipart(t *testing.T) {
	sys := newFakePrompts()
	srv := newShareServer(sys)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Shared"))
	require.NoError(t, mw.WriteField("text", "Body"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/share", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User", "u1")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?shared=true", rec.Header().Get("Location"))
	require.Len(t, sys.created, 1)
	assert.Equal(t, "Shared\n\nBody", sys.created[0].Content)
	assert.Nil(t, sys.created[0].Source)
}

func TestShareRedirects(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		sys := newFakePrompts()
		rec := postForm(newShareServer(sys), "", url.Values{"text": {"x"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Empty(t, sys.created)
	})

	t.Run("empty", func(t *testing.T) {
		sys := newFakePrompts()
		rec := postForm(newShareServer(sys), "u1", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?error=empty_share", rec.Header().Get("Location"))
		assert.Empty(t, sys.created)
	})

	t.Run("storage failure", func(t *testing.T) {
		sys := newFakePrompts()
		sys.failNext = assert.AnError
		rec := postForm(newShareServer(sys), "u1", url.Values{"text": {"x"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?error=share_failed", rec.Header().Get("Location"))
	})
}
