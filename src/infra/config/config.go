// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Server, log, build and CORS values use the "APP" prefix (APP_PORT,
// APP_LOG_LEVEL). Database values use the libpq names (PGHOST, PGPORT, ...)
// and NODE_ENV selects the database profile.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration, resolved against the environment profile
	Database DatabaseConfig

	// Logging configuration
	Log LogConfig

	// Build metadata locations
	Build BuildConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 3000)
	Port int `envconfig:"PORT" default:"3000"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// Empty fields are filled from the profile selected by Environment.
type DatabaseConfig struct {
	// Environment selects the connection profile (development, test, production).
	Environment string `envconfig:"NODE_ENV" default:"development"`

	Host     string `envconfig:"PGHOST"`
	Port     int    `envconfig:"PGPORT"`
	Name     string `envconfig:"PGDATABASE"`
	User     string `envconfig:"PGUSER"`
	Password string `envconfig:"PGPASSWORD"`

	// QueryTimeout bounds every statement issued through the executor.
	// Zero disables the bound (default: 30s).
	QueryTimeout time.Duration `envconfig:"APP_DB_QUERY_TIMEOUT" default:"30s"`

	// Set from the profile, not from the environment.
	SSLMode     string        `ignored:"true"`
	MaxConns    int           `ignored:"true"`
	IdleTimeout time.Duration `ignored:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: plain)
	Format string `envconfig:"LOG_FORMAT" default:"plain"`
}

// BuildConfig points at the files that describe the running build.
type BuildConfig struct {
	// ManifestPath is the package manifest holding the application version.
	ManifestPath string `envconfig:"MANIFEST_PATH" default:"package.json"`

	// VersionFile is the descriptor written by `udin version generate`.
	VersionFile string `envconfig:"VERSION_FILE" default:"public/version.json"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigin string `envconfig:"CORS_ORIGIN" default:"*"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv reads configuration from the process environment only.
// It returns an error if required variables are missing or invalid.
func LoadFromEnv() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Build); err != nil {
		return nil, fmt.Errorf("failed to load build config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.CORS); err != nil {
		return nil, fmt.Errorf("failed to load cors config: %w", err)
	}

	if err := cfg.Database.Resolve(); err != nil {
		return nil, fmt.Errorf("failed to resolve database config: %w", err)
	}

	return &cfg, nil
}
