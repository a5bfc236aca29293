package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	CORSOrigins []string

	// Backend land-deals API
	BackendURL       string
	BackendTimeout   time.Duration
	BackendJWTSecret string

	// Redis
	RedisAddr string
	RedisPass string
	RedisDB   int

	// List views
	ListPageSize   int
	SearchDebounce time.Duration
	InFlightTTL    time.Duration

	// Console sessions
	SessionTTL time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"*"}),

		BackendURL:       strings.TrimRight(getEnv("BACKEND_API_URL", "http://localhost:5000/api"), "/"),
		BackendTimeout:   getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		BackendJWTSecret: getEnv("BACKEND_JWT_SECRET", ""),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		ListPageSize:   getEnvInt("LIST_PAGE_SIZE", 5),
		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		InFlightTTL:    getEnvDuration("INFLIGHT_TTL", 30*time.Second),

		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
