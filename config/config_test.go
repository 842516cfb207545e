package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "LLM Agent Server", cfg.API.Title)
	assert.Equal(t, "0.1.0", cfg.API.Version)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
	assert.Equal(t, 10, cfg.Agent.MaxIterations)
	assert.Zero(t, cfg.Agent.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Search.SerpAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_OPENAI_API_KEY", "sk-prefixed")
	t.Setenv("APP_OPENAI_MODEL", "gpt-4-turbo")
	t.Setenv("APP_SERVER_PORT", "9000")
	t.Setenv("APP_AGENT_MAX_ITERATIONS", "3")
	t.Setenv("SERPAPI_API_KEY", "serp-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-prefixed", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4-turbo", cfg.OpenAI.Model)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Agent.MaxIterations)
	assert.Equal(t, "serp-key", cfg.Search.SerpAPIKey)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("APP_OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestModelAvailable(t *testing.T) {
	cfg := &Config{OpenAI: OpenAIConfig{AvailableModels: []string{"gpt-4o", "gpt-3.5-turbo"}}}

	assert.True(t, cfg.ModelAvailable("gpt-4o"))
	assert.False(t, cfg.ModelAvailable("llama-7b"))
}
