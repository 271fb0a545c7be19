package config

import (
	"testing"
	"time"

	"leetify-go/leetify"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"LEETIFY_API_KEY", "LEETIFY_BASE_URL", "LEETIFY_TIMEOUT", "DB_PATH", "SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, cfg.LeetifyAPIKey)
	assert.Equal(t, leetify.DefaultBaseURL, cfg.LeetifyBaseURL)
	assert.Equal(t, leetify.DefaultTimeout, cfg.LeetifyTimeout)
	assert.Equal(t, "leetify.db", cfg.DBPath)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEETIFY_API_KEY", "key")
	t.Setenv("LEETIFY_BASE_URL", "https://proxy.example.com")
	t.Setenv("LEETIFY_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.LeetifyAPIKey)
	assert.Equal(t, 5*time.Second, cfg.LeetifyTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)

	client, err := NewLeetifyClient(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, leetify.Config{APIKey: "key", Timeout: 5 * time.Second, BaseURL: "https://proxy.example.com"}, client.Config())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"LEETIFY_TIMEOUT":     "soon",
		"RATE_LIMIT_WINDOW":   "1 minute",
		"RATE_LIMIT_REQUESTS": "many",
		"LOG_LEVEL":           "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)
			_, err := Load(zerolog.Nop())
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestNewLeetifyClientRejectsInvalidSettings(t *testing.T) {
	_, err := NewLeetifyClient(&Config{LeetifyBaseURL: "not a url", LeetifyTimeout: time.Second}, zerolog.Nop())
	assert.ErrorIs(t, err, leetify.ErrInvalidConfig)

	_, err = NewLeetifyClient(&Config{LeetifyBaseURL: leetify.DefaultBaseURL}, zerolog.Nop())
	assert.ErrorIs(t, err, leetify.ErrInvalidConfig)
}
