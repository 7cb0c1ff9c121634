package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	for _, key := range []string{
		"PORT", "LLM_MODEL", "LLM_MAX_RETRIES", "LLM_FAST_MODEL",
		"LLM_STRONG_MODEL", "GEO_CACHE_TTL", "SEARCH_PAGE_SIZE", "FRONTEND_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 3, cfg.Geo.MaxRetries)
	assert.Empty(t, cfg.Geo.FastModel)
	assert.Empty(t, cfg.Geo.StrongModel)
	assert.Equal(t, 5*time.Minute, cfg.Geo.CacheTTL)
	assert.Equal(t, 25, cfg.Search.PageSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("LLM_MAX_RETRIES", "5")
	t.Setenv("LLM_FAST_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_STRONG_MODEL", "gpt-4o")
	t.Setenv("FRONTEND_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Geo.MaxRetries)
	assert.Equal(t, "gpt-4o-mini", cfg.Geo.FastModel)
	assert.Equal(t, "gpt-4o", cfg.Geo.StrongModel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_RejectsZeroRetries(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("LLM_MAX_RETRIES", "0")

	_, err := Load()
	assert.Error(t, err)
}
