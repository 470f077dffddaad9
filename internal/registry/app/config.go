package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
)

type Config struct {
	Issuer         string        // Issuer claim for access tokens (default: healthdesk-registry)
	TokenTTL       time.Duration // Access token lifetime (default: 12h)
	SigningKeyFile string        // Ed25519 PEM key; empty keeps a generated key in memory (default: signing.pem)
	DatabaseFile   string        // Path to SQLite database file (default: ./registry.db)
	PepperFile     string        // Path to file containing pepper for password hashing (default: ./pepper)

	StaffUsername string // Seeded staff account (default: doctor)
	StaffPassword string // Optional: generated and logged once when unset and no staff exists

	CORSOrigins []string // Browser origins allowed to call the API (default: http://localhost:3000)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads a .env file if one exists, then the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:              getEnvOrDefault("REGISTRY_ISSUER", "healthdesk-registry"),
		TokenTTL:            getEnvDurationOrDefault("REGISTRY_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		SigningKeyFile:      getEnvOrDefault("REGISTRY_SIGNING_KEY_FILE", "signing.pem"),
		DatabaseFile:        getEnvOrDefault("REGISTRY_DATABASE_FILE", "registry.db"),
		PepperFile:          getEnvOrDefault("REGISTRY_PEPPER_FILE", "pepper"),
		StaffUsername:       getEnvOrDefault("REGISTRY_STAFF_USERNAME", "doctor"),
		StaffPassword:       os.Getenv("REGISTRY_STAFF_PASSWORD"),
		CORSOrigins:         httpx.ParseOrigins(getEnvOrDefault("REGISTRY_CORS_ORIGINS", "http://localhost:3000")),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// REGISTRY_SIGNING_KEY_FILE="" is an explicit request for an in-memory key.
	if v, ok := os.LookupEnv("REGISTRY_SIGNING_KEY_FILE"); ok && v == "" {
		cfg.SigningKeyFile = ""
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
