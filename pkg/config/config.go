package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment            string
	ServerPort             int
	APIBaseURL             string
	RedisURL               string
	LogLevel               string
	SessionSecret          string
	SessionTTLHours        int
	MonitorIntervalSeconds int
	LoginRateLimit         int
	WSAllowedOrigins       []string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	monitorInterval, err := strconv.Atoi(getEnv("MONITOR_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_INTERVAL_SECONDS: %w", err)
	}

	loginRateLimit, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}

	return &Config{
		Environment:            getEnv("ENVIRONMENT", "development"),
		ServerPort:             port,
		APIBaseURL:             strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		RedisURL:               getEnv("REDIS_URL", "redis://localhost:6379"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		SessionSecret:          getEnv("SESSION_SECRET", ""),
		SessionTTLHours:        sessionTTL,
		MonitorIntervalSeconds: monitorInterval,
		LoginRateLimit:         loginRateLimit,
		WSAllowedOrigins: parseCSVEnv("WS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
		}),
	}, nil
}

// Production reports whether production hardening (secure cookies) applies.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
