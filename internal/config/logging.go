package config

import "adaptui/internal/logging"

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" toml:"level" env:"ADAPTUI_LOG_LEVEL"`          // debug, info, warn, error
	Format     string          `yaml:"format" toml:"format" env:"ADAPTUI_LOG_FORMAT"`       // json, console
	File       string          `yaml:"file,omitempty" toml:"file,omitempty" env:"ADAPTUI_LOG_FILE"` // empty = stderr
	Categories map[string]bool `yaml:"categories,omitempty" toml:"categories,omitempty"`   // Per-category toggles
}

// Options converts the config into logging package options.
func (c LoggingConfig) Options() logging.Options {
	return logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		Categories: c.Categories,
	}
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
