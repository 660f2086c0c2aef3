// Package config holds the application configuration, loaded from a YAML
// file with command-line flags layered on top.
package config

import (
	"github.com/jverhoeven/sortdir/pkg/models"
)

// Config represents the application configuration.
type Config struct {
	Organize OrganizeConfig `yaml:"organize"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Web      WebConfig      `yaml:"web"`
}

// OrganizeConfig holds placement-related settings.
type OrganizeConfig struct {
	// OnDuplicate is the default duplicate policy; the CLI overrides it
	// per run and falls back to auto-copy when stdin is not a terminal
	OnDuplicate models.DuplicatePolicy `yaml:"on_duplicate"`
}

// OutputConfig holds output-related settings.
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar during moves
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds diagnostic-logging settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// WebConfig holds web front-end settings.
type WebConfig struct {
	Port int `yaml:"port"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Organize: OrganizeConfig{
			OnDuplicate: models.PolicyInteractive,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Web: WebConfig{
			Port: 5000,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Organize.OnDuplicate.Valid() {
		return &models.ValidationError{
			Field:   "organize.on_duplicate",
			Message: "must be 'interactive', 'auto-copy' or 'auto-overwrite'",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return &models.ValidationError{
			Field:   "web.port",
			Message: "must be between 1 and 65535",
		}
	}

	return nil
}
