package exports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/exports"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/pkg/lifecycle"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

type memoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: make(map[string][]byte), types: make(map[string]string)}
}

func (m *memoryStore) Start(*lifecycle.Coordinator) error { return nil }

func (m *memoryStore) Upload(_ context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryStore) Download(_ context.Context, key string) (*storage.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   m.types[key],
		ContentLength: int64(len(data)),
	}, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

type fakePrompts struct {
	prompts.System
	data []prompts.Prompt
	tags map[string][]tags.Tag
}

func (f *fakePrompts) List(_ context.Context, ownerID string, page pagination.PageRequest, _ prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	var owned []prompts.Prompt
	for _, p := range f.data {
		if p.UserID == ownerID {
			owned = append(owned, p)
		}
	}

	end := min(page.Offset+page.Limit, len(owned))
	start := min(page.Offset, end)
	result := pagination.NewPageResult(owned[start:end], len(owned), page)
	return &result, nil
}

func (f *fakePrompts) Tags(_ context.Context, promptID string) ([]tags.Tag, error) {
	return f.tags[promptID], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seed(n int) *fakePrompts {
	f := &fakePrompts{tags: make(map[string][]tags.Tag)}
	for i := range n {
		id := fmt.Sprintf("prompt-%03d", i)
		f.data = append(f.data, prompts.Prompt{ID: id, UserID: "u1", Content: "content " + id})
		f.tags[id] = []tags.Tag{{Name: "t" + id}}
	}
	f.data = append(f.data, prompts.Prompt{ID: "prompt-other", UserID: "u2", Content: "x"})
	return f
}

func TestCreateAndOpen(t *testing.T) {
	store := newMemoryStore()
	sys := exports.New(seed(7), store, exports.Config{PageSize: 3, Concurrency: 2}, discardLogger())
	ctx := context.Background()

	export, err := sys.Create(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, export.Count)
	assert.True(t, strings.HasPrefix(export.Name, "prompts-"))
	assert.Contains(t, store.blobs, "exports/u1/"+export.Name)

	blob, err := sys.Open(ctx, "u1", export.Name)
	require.NoError(t, err)
	defer blob.Body.Close()
	assert.Equal(t, "application/json", blob.ContentType)
	assert.Equal(t, export.Size, blob.ContentLength)

	var doc exports.Document
	require.NoError(t, json.NewDecoder(blob.Body).Decode(&doc))
	assert.Equal(t, "u1", doc.UserID)
	require.Len(t, doc.Prompts, 7)
	for i, entry := range doc.Prompts {
		id := fmt.Sprintf("prompt-%03d", i)
		assert.Equal(t, id, entry.ID, "order is preserved")
		assert.Equal(t, []string{"t" + id}, entry.Tags)
	}
}

func TestOpenIsScopedToUser(t *testing.T) {
	store := newMemoryStore()
	sys := exports.New(seed(1), store, exports.Config{}, discardLogger())
	ctx := context.Background()

	export, err := sys.Create(ctx, "u1")
	require.NoError(t, err)

	_, err = sys.Open(ctx, "u2", export.Name)
	assert.ErrorIs(t, err, exports.ErrNotFound)

	_, err = sys.Open(ctx, "u1", "../u2/prompts.json")
	assert.ErrorIs(t, err, exports.ErrInvalidName)
}

func TestEmptyExport(t *testing.T) {
	sys := exports.New(seed(0), newMemoryStore(), exports.Config{}, discardLogger())

	export, err := sys.Create(context.Background(), "u-none")
	require.NoError(t, err)
	assert.Zero(t, export.Count)
}

func TestCreateLogsReadableSize(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sys := exports.New(seed(2), newMemoryStore(), exports.Config{}, logger)

	_, err := sys.Create(context.Background(), "u1")
	require.NoError(t, err)

	type logEntry struct {
		Msg     string `json:"msg"`
		Prompts int    `json:"prompts"`
		Size    string `json:"size"`
	}

	var entry logEntry
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e.Msg == "export created" {
			entry = e
		}
	}

	assert.Equal(t, "export created", entry.Msg)
	assert.Equal(t, 2, entry.Prompts)
	assert.Regexp(t, `^\d+(\.\d)? (B|KB)$`, entry.Size)
}

func TestHandler(t *testing.T) {
	store := newMemoryStore()
	h := exports.NewHandler(
		exports.New(seed(2), store, exports.Config{}, discardLogger()),
		discardLogger(),
	)

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	srv := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := r.Header.Get("X-User"); user != "" {
			r = r.WithContext(auth.WithCaller(r.Context(), user))
		}
		mux.ServeHTTP(w, r)
	})

	do := func(method, path, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, do("POST", "/exports", "").Code)

	rec := do("POST", "/exports", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Export  exports.Export `json:"export"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Export.Count)

	rec = do("GET", "/exports/"+body.Export.Name, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), body.Export.Name)

	var doc exports.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Prompts, 2)

	assert.Equal(t, http.StatusNotFound, do("GET", "/exports/"+body.Export.Name, "u2").Code)
	assert.Equal(t, http.StatusBadRequest, do("GET", "/exports/nope.txt", "u1").Code)
	assert.Equal(t, http.StatusUnauthorized, do("GET", "/exports/"+body.Export.Name, "").Code)
}
