package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	assert.Equal(t, "3.1.0", spec.OpenAPI)
	assert.Equal(t, "Test API", spec.Info.Title)
	require.NotNil(t, spec.Components)
	assert.Contains(t, spec.Components.Responses, "Unauthorized")
	assert.Contains(t, spec.Components.Responses, "Forbidden")
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.AddOperation("/prompts", http.MethodGet, &openapi.Operation{Summary: "list"})
	spec.AddOperation("/prompts", http.MethodPost, &openapi.Operation{Summary: "create"})
	spec.AddOperation("/prompts", "PATCH", &openapi.Operation{Summary: "ignored"})

	item := spec.Paths["/prompts"]
	require.NotNil(t, item)
	assert.Equal(t, "list", item.Get.Summary)
	assert.Equal(t, "create", item.Post.Summary)
}

func TestConfigDefaults(t *testing.T) {
	cfg := &openapi.Config{}
	require.NoError(t, cfg.Finalize(nil))
	assert.Equal(t, "promptvault API", cfg.Title)
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.AddOperation("/tags", http.MethodGet, &openapi.Operation{
		Summary:    "List tags",
		Parameters: openapi.PageParams(),
		Responses:  map[int]*openapi.Response{401: openapi.ResponseRef("Unauthorized")},
	})

	data, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Contains(t, parsed["paths"], "/tags")
}
