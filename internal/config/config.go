// Package config provides centralized configuration for the application.
// Settings come from environment variables with sensible defaults and are
// validated on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	History HistoryConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout per request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatasetConfig holds dataset acquisition and filtering settings.
type DatasetConfig struct {
	// Location is the dataset source: a local CSV path or an HTTP(S)
	// URL (required). Supports DATASET_URL and DATASET_PATH.
	Location string `env:"DATASET_URL" envAlt:"DATASET_PATH" required:"true"`

	// DefaultLimit is the result cap used when a filter request does
	// not supply one (default: 20)
	DefaultLimit int `env:"DATASET_DEFAULT_LIMIT" default:"20"`

	// MaxLimit is the largest result cap a request may ask for
	// (default: 100000)
	MaxLimit int `env:"DATASET_MAX_LIMIT" default:"100000"`
}

// HistoryConfig holds the optional ingestion history database settings.
type HistoryConfig struct {
	// DatabaseURL is the PostgreSQL connection string. Empty disables
	// the ingestion history entirely.
	DatabaseURL string `env:"DATABASE_URL"`

	// MaxConns is the connection pool ceiling (default: 5)
	MaxConns int `env:"DB_MAX_CONNS" default:"5"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
