// Package config loads folio's configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all host configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
	Sandbox SandboxConfig
	Reader  ReaderConfig
}

// ServerConfig holds the demo host's HTTP configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ReaderConfig holds per-reader defaults.
type ReaderConfig struct {
	ThemeFile string `envconfig:"THEME_FILE" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// SandboxConfig holds the in-process engine stand-in's limits.
type SandboxConfig struct {
	Timeout       time.Duration `envconfig:"SANDBOX_TIMEOUT" default:"5s"`
	EnableConsole bool          `envconfig:"SANDBOX_CONSOLE" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("FOLIO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// default when loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
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
		Sandbox: SandboxConfig{
			Timeout:       5 * time.Second,
			EnableConsole: true,
		},
		Reader: ReaderConfig{},
	}
}
