// Package config loads service configuration. Defaults are layered
// under an optional TOML file, which is layered under environment
// variables; the environment always wins.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port"`
	Host string `envconfig:"HOST" toml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development"`
}

// RateLimitConfig bounds inbound renderer events per connection and
// HTTP requests per client IP.
type RateLimitConfig struct {
	EventsPerSecond   int  `envconfig:"RATE_LIMIT_EPS" toml:"events_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst"`
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second"`
	RequestBurst      int  `envconfig:"RATE_LIMIT_REQUEST_BURST" toml:"request_burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled"`
}

// SchedulerConfig sizes the cooperative loop's task queue.
type SchedulerConfig struct {
	QueueSize int `envconfig:"SCHED_QUEUE_SIZE" toml:"queue_size"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8600",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			EventsPerSecond:   200,
			Burst:             400,
			RequestsPerSecond: 100,
			RequestBurst:      200,
			Enabled:           true,
		},
		Scheduler: SchedulerConfig{
			QueueSize: 256,
		},
	}
}

// Load builds configuration from defaults, an optional TOML file, and
// environment variables, in that order of precedence. An empty path
// skips the file layer; a missing file at a given path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults on failure.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
