package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"leetify-go/leetify"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	LeetifyAPIKey  string
	LeetifyBaseURL string
	LeetifyTimeout time.Duration

	DBPath     string
	ServerPort string
	LogLevel   zerolog.Level

	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	timeout, err := getDuration("LEETIFY_TIMEOUT", leetify.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	window, err := getDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	requests, err := getInt("RATE_LIMIT_REQUESTS", 60)
	if err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		LeetifyAPIKey:      getEnv("LEETIFY_API_KEY", ""),
		LeetifyBaseURL:     getEnv("LEETIFY_BASE_URL", leetify.DefaultBaseURL),
		LeetifyTimeout:     timeout,
		DBPath:             getEnv("DB_PATH", "leetify.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           level,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRequests:  requests,
		RateLimitWindow:    window,
	}

	if cfg.LeetifyAPIKey == "" {
		logger.Warn().Msg("LEETIFY_API_KEY not set, requests use the unauthenticated rate limit")
	}

	logger.Debug().
		Str("base_url", cfg.LeetifyBaseURL).
		Dur("timeout", cfg.LeetifyTimeout).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel.String()).
		Msg("configuration loaded")

	return cfg, nil
}

// NewLeetifyClient builds the API client from the loaded settings.
func NewLeetifyClient(cfg *Config, logger zerolog.Logger) (*leetify.Client, error) {
	client, err := leetify.NewBuilder().
		APIKey(cfg.LeetifyAPIKey).
		BaseURL(cfg.LeetifyBaseURL).
		Timeout(cfg.LeetifyTimeout).
		Logger(logger.With().Str("component", "leetify").Logger()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build leetify client: %w", err)
	}
	return client, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
