package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/pkg/pagination"
)

func defaultConfig(t *testing.T) pagination.Config {
	t.Helper()
	cfg := pagination.Config{}
	require.NoError(t, cfg.Finalize(nil))
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := defaultConfig(t)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 200, cfg.MaxLimit)
}

func TestConfigValidation(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 300, MaxLimit: 100}
	assert.Error(t, cfg.Finalize(nil))
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_DEFAULT_LIMIT", "10")

	cfg := pagination.Config{}
	require.NoError(t, cfg.Finalize(&pagination.ConfigEnv{DefaultLimit: "TEST_DEFAULT_LIMIT"}))
	assert.Equal(t, 10, cfg.DefaultLimit)
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := defaultConfig(t)

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"limit clamps to max", "limit=1000", 200, 0},
		{"negative offset clamps", "offset=-5", 50, 0},
		{"garbage falls back", "limit=abc&offset=xyz", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			req := pagination.PageRequestFromQuery(values, cfg)
			assert.Equal(t, tt.wantLimit, req.Limit)
			assert.Equal(t, tt.wantOffset, req.Offset)
		})
	}
}

func TestNewPageResultNeverNil(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, pagination.PageRequest{Limit: 50})

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, 50, result.Limit)
}
