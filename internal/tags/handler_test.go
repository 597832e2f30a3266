package tags_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/internal/testdb"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

type fakeSystem struct {
	tags    map[string]tags.Tag
	deleted []string
}

func (f *fakeSystem) Create(_ context.Context, ownerID string, cmd tags.CreateCommand) (*tags.Tag, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, tags.ErrNameRequired
	}
	for _, t := range f.tags {
		if t.UserID == ownerID && t.Name == cmd.Name {
			return nil, tags.ErrDuplicate
		}
	}
	t := tags.Tag{ID: "tag-new", UserID: ownerID, Name: cmd.Name, Color: cmd.Color}
	f.tags[t.ID] = t
	return &t, nil
}

func (f *fakeSystem) Find(_ context.Context, id string) (*tags.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, tags.ErrNotFound
	}
	return &t, nil
}

func (f *fakeSystem) List(_ context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResult[tags.Tag], error) {
	var out []tags.Tag
	for _, t := range f.tags {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	result := pagination.NewPageResult(out, len(out), page)
	return &result, nil
}

func (f *fakeSystem) Update(_ context.Context, id string, cmd tags.UpdateCommand) (*tags.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, tags.ErrNotFound
	}
	if cmd.Name != nil {
		t.Name = *cmd.Name
	}
	if cmd.Color != nil {
		t.Color = cmd.Color
	}
	f.tags[id] = t
	return &t, nil
}

func (f *fakeSystem) Delete(_ context.Context, id string) error {
	if _, ok := f.tags[id]; !ok {
		return tags.ErrNotFound
	}
	delete(f.tags, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newServer(sys tags.System) http.Handler {
	h := tags.NewHandler(sys, validation.New(), testdb.Logger(), pageConfig)

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := r.Header.Get("X-User"); user != "" {
			r = r.WithContext(auth.WithCaller(r.Context(), user))
		}
		mux.ServeHTTP(w, r)
	})
}

func call(srv http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandlerMatrix(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		status int
	}{
		{"list anonymous", "GET", "/tags", "", "", http.StatusUnauthorized},
		{"list", "GET", "/tags", "u1", "", http.StatusOK},
		{"create anonymous", "POST", "/tags", "", `{"name":"x"}`, http.StatusUnauthorized},
		{"create", "POST", "/tags", "u1", `{"name":"new","color":"#fff"}`, http.StatusOK},
		{"create bad color", "POST", "/tags", "u1", `{"name":"new","color":"blue"}`, http.StatusBadRequest},
		{"create color with alpha", "POST", "/tags", "u1", `{"name":"new","color":"#ffffff80"}`, http.StatusBadRequest},
		{"create blank name", "POST", "/tags", "u1", `{"name":" "}`, http.StatusBadRequest},
		{"create duplicate", "POST", "/tags", "u1", `{"name":"work"}`, http.StatusConflict},
		{"create malformed", "POST", "/tags", "u1", `{`, http.StatusBadRequest},
		{"find", "GET", "/tags/tag-1", "u1", "", http.StatusOK},
		{"find missing", "GET", "/tags/tag-404", "u1", "", http.StatusNotFound},
		{"find other owner", "GET", "/tags/tag-1", "u2", "", http.StatusForbidden},
		{"update", "PUT", "/tags/tag-1", "u1", `{"name":"renamed"}`, http.StatusOK},
		{"update color with alpha", "PUT", "/tags/tag-1", "u1", `{"color":"#fff8"}`, http.StatusBadRequest},
		{"update other owner", "PUT", "/tags/tag-1", "u2", `{"name":"renamed"}`, http.StatusForbidden},
		{"update missing", "PUT", "/tags/tag-404", "u1", `{"name":"renamed"}`, http.StatusNotFound},
		{"delete other owner", "DELETE", "/tags/tag-1", "u2", "", http.StatusForbidden},
		{"delete missing", "DELETE", "/tags/tag-404", "u1", "", http.StatusNotFound},
		{"delete", "DELETE", "/tags/tag-1", "u1", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{tags: map[string]tags.Tag{
				"tag-1": {ID: "tag-1", UserID: "u1", Name: "work"},
			}}

			rec := call(newServer(sys), tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.status == http.StatusOK {
				assert.Equal(t, true, body["success"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestHandlerListEnvelope(t *testing.T) {
	sys := &fakeSystem{tags: map[string]tags.Tag{
		"tag-1": {ID: "tag-1", UserID: "u1", Name: "work"},
		"tag-2": {ID: "tag-2", UserID: "u2", Name: "home"},
	}}

	rec := call(newServer(sys), "GET", "/tags?limit=10", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool       `json:"success"`
		Tags    []tags.Tag `json:"tags"`
		Total   int        `json:"total"`
		Limit   int        `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 10, body.Limit)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, "work", body.Tags[0].Name)
}

func TestHandlerDeleteOnlyAfterOwnership(t *testing.T) {
	sys := &fakeSystem{tags: map[string]tags.Tag{
		"tag-1": {ID: "tag-1", UserID: "u1", Name: "work"},
	}}

	call(newServer(sys), "DELETE", "/tags/tag-1", "u2", "")
	assert.Empty(t, sys.deleted)
}
