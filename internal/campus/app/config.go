package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AdminUsername     string // Required: admin account for POST /v1/login
	AdminPassword     string // Required unless AdminPasswordHash is set: plaintext admin password
	AdminPasswordHash string // Optional: Argon2id PHC string; takes precedence over AdminPassword

	TokenSecret string        // Required: HMAC secret for session tokens
	TokenIssuer string        // Optional: issuer claim for session tokens (default: campus)
	SessionTTL  time.Duration // Optional: session token lifetime (default: 1h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./campus.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	RequestTimeout      time.Duration // Per-request deadline (default: 15s)
}

func LoadConfig() Config {
	return Config{
		AdminUsername:     os.Getenv("CAMPUS_ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("CAMPUS_ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("CAMPUS_ADMIN_PASSWORD_HASH"),

		TokenSecret: os.Getenv("CAMPUS_TOKEN_SECRET"),
		TokenIssuer: getEnvOrDefault("CAMPUS_TOKEN_ISSUER", "campus"),
		SessionTTL:  getEnvDurationOrDefault("CAMPUS_SESSION_TTL", time.Hour),

		DatabaseFile:        getEnvOrDefault("CAMPUS_DATABASE_FILE", "campus.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RequestTimeout:      getEnvDurationOrDefault("REQUEST_TIMEOUT", 15*time.Second),
	}
}

// Validate rejects configurations that would silently run without working
// authentication. Secret values are never included in the returned errors.
func (cfg Config) Validate() error {
	if cfg.AdminUsername == "" {
		return errors.New("CAMPUS_ADMIN_USERNAME must be set")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return errors.New("one of CAMPUS_ADMIN_PASSWORD or CAMPUS_ADMIN_PASSWORD_HASH must be set")
	}
	if cfg.TokenSecret == "" {
		return errors.New("CAMPUS_TOKEN_SECRET must be set")
	}
	if cfg.SessionTTL <= 0 {
		return errors.New("CAMPUS_SESSION_TTL must be positive")
	}
	return nil
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

	// Duration syntax first (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
