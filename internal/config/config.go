// Package config provides centralized configuration for the pipeline.
// It loads settings from environment variables with sensible defaults and
// validates everything on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all pipeline configuration.
// All settings can be configured via environment variables.
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Generate GenerateConfig
	Load     LoadConfig
	Logging  LoggingConfig
}

// DataConfig holds filesystem locations for raw and processed data.
type DataConfig struct {
	// RawDir is where generated CSV extracts live (default: data/raw)
	RawDir string `env:"DATA_RAW_DIR" default:"data/raw"`

	// ProcessedDir is where exported reports are written (default: data/processed)
	ProcessedDir string `env:"DATA_PROCESSED_DIR" default:"data/processed"`

	// LogFile is an optional file that receives a copy of all log output.
	// Empty means log to stdout only.
	LogFile string `env:"DATA_LOG_FILE"`
}

// DatabaseConfig holds PostgreSQL connection settings. The URL is only
// required by the load and report stages; generate and validate run without
// a database.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// ConnectTimeout bounds the initial connection attempt (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// GenerateConfig holds synthetic data generation settings.
type GenerateConfig struct {
	// Seed makes generation deterministic (default: 42)
	Seed int64 `env:"GENERATE_SEED" default:"42"`

	// Customers is the number of customer records to generate (default: 1000)
	Customers int `env:"GENERATE_CUSTOMERS" default:"1000"`

	// ContentItems is the number of catalog items to generate (default: 300)
	ContentItems int `env:"GENERATE_CONTENT_ITEMS" default:"300"`

	// Subscriptions is the number of subscription records (default: 1200)
	Subscriptions int `env:"GENERATE_SUBSCRIPTIONS" default:"1200"`

	// UsageLogs is the number of playback events (default: 20000)
	UsageLogs int `env:"GENERATE_USAGE_LOGS" default:"20000"`
}

// LoadConfig holds bulk load settings.
type LoadConfig struct {
	// Timeout is the maximum duration for loading one dataset (default: 5m)
	Timeout time.Duration `env:"LOAD_TIMEOUT" default:"5m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
