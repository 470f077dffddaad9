package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/healthdesk/internal/desk/search"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/tokenstore"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	APIURL         string        // Registry base URL including /api (default: http://localhost:8080/api)
	TokenBackend   string        // Durable token scope: file or redis (default: file)
	TokenFile      string        // Token file for the file backend (default: $XDG_CONFIG_HOME/healthdesk/token)
	RedisAddr      string        // host:port for the redis backend (default: localhost:6379)
	RedisPassword  string        // Optional
	RedisKey       string        // Key holding the token (default: healthdesk:desk:token)
	RedisTTL       time.Duration // Expiry of the remembered token in redis; bare integers are minutes (default: 12h)
	SearchDebounce time.Duration // Quiet period before a typed search runs; bare integers are milliseconds (default: 500ms)
	Env            string        // dev, prod (default: prod)
	LogLevel       string        // Log level (default: warn)
	LogFormat      string        // json or text (default: text)
}

// LoadConfig reads a .env file if one exists, then the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:         getEnvOrDefault("DESK_API_URL", "http://localhost:8080/api"),
		TokenBackend:   getEnvOrDefault("DESK_TOKEN_BACKEND", BackendFile),
		TokenFile:      os.Getenv("DESK_TOKEN_FILE"),
		RedisAddr:      getEnvOrDefault("DESK_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("DESK_REDIS_PASSWORD"),
		RedisKey:       getEnvOrDefault("DESK_REDIS_KEY", tokenstore.DefaultRedisKey),
		RedisTTL:       getEnvDurationOrDefault("DESK_REDIS_TTL", time.Minute, jwtx.DefaultAccessTokenTTL),
		SearchDebounce: getEnvDurationOrDefault("DESK_SEARCH_DEBOUNCE", time.Millisecond, search.DefaultDebounce),
		Env:            getEnvOrDefault("ENV", "prod"),
		LogLevel:       getEnvOrDefault("DESK_LOG_LEVEL", "warn"),
		LogFormat:      getEnvOrDefault("DESK_LOG_FORMAT", "text"),
	}

	if cfg.TokenFile == "" {
		if p, err := tokenstore.DefaultTokenPath(); err == nil {
			cfg.TokenFile = p
		} else {
			cfg.TokenFile = filepath.Join(".", ".healthdesk-token")
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDurationOrDefault parses a Go duration string, or a bare integer
// counted in unit.
func getEnvDurationOrDefault(key string, unit, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * unit
	}

	return defaultValue
}
