// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	"github.com/honeydid/honeydid/internal/storage"
)

// Keyring backends.
const (
	// KeyringBackendAuto tries the OS keyring first and falls back to a file in the data directory.
	KeyringBackendAuto = "auto"
	// KeyringBackendFile always keeps the local secret in a file in the data directory.
	KeyringBackendFile = "file"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is the directory holding the sealed document, password hash and settings.
	DataDir string

	// KeyringService and KeyringUser identify the local secret in the OS keyring.
	KeyringService string
	KeyringUser    string
	// KeyringBackend is "auto" or "file".
	KeyringBackend string

	// KMSKeyURI, when set, wraps the file-stored local secret with a gocloud.dev secrets keeper
	// (e.g. "base64key://...", "hashivault://...").
	KMSKeyURI string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// ServerHost is the host address the local API binds to.
	ServerHost string
	// ServerPort is the port number the local API listens on.
	ServerPort int
	// ShutdownTimeout bounds the graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// RateLimitEnabled indicates whether per-client rate limiting of the local API is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per client.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Storage
		DataDir:        env.GetString("DATA_DIR", defaultDataDir()),
		KeyringService: env.GetString("KEYRING_SERVICE", storage.KeyringService),
		KeyringUser:    env.GetString("KEYRING_USER", storage.KeyringUser),
		KeyringBackend: env.GetString("KEYRING_BACKEND", KeyringBackendAuto),
		KMSKeyURI:      env.GetString("KMS_KEY_URI", ""),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Local API
		ServerHost:      env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort:      env.GetInt("SERVER_PORT", 8420),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "honeydid"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8421),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// defaultDataDir is the per-user configuration directory, or a dot directory under the working
// directory when the OS reports none.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".honey-did"
	}
	return filepath.Join(dir, "honey-did")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
