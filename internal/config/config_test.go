package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GEMINI_API_KEY", "TINA_MODEL_NAME", "TINA_PROVIDER_TIMEOUT",
		"TINA_USE_MOCK_LLM", "TINA_LOG_LEVEL", "TINA_LOG_PRETTY", "TINA_CORS_ORIGIN",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.ModelName)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.UseMockLLM)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSOrigin)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("TINA_MODEL_NAME", "gemini-2.5-flash")
	t.Setenv("TINA_PROVIDER_TIMEOUT", "15s")
	t.Setenv("TINA_LOG_LEVEL", "debug")
	t.Setenv("TINA_CORS_ORIGIN", "http://localhost:5173")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
}

func TestMissingAPIKeyIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := config.FromViper(viper.New())
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestMockModeNeedsNoAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("TINA_USE_MOCK_LLM", "true")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.UseMockLLM)
}

func TestInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("TINA_PROVIDER_TIMEOUT", "0s")

	_, err := config.FromViper(viper.New())
	assert.Error(t, err)
}
