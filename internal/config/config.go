package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all adaptui configuration.
type Config struct {
	// Visual theme token and palette mode
	Theme ThemeConfig `yaml:"theme" toml:"theme"`

	// Feedback service
	Haptics HapticsConfig `yaml:"haptics" toml:"haptics"`

	// Layout constants for the continuous controls
	Slider SliderConfig `yaml:"slider" toml:"slider"`
	Wheel  WheelConfig  `yaml:"wheel" toml:"wheel"`

	// Frame rate and spring tuning
	Animation AnimationConfig `yaml:"animation" toml:"animation"`

	// Gesture sampling channel
	Sampler SamplerConfig `yaml:"sampler" toml:"sampler"`

	// Logging
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// SamplerConfig configures the gesture sampling goroutine.
type SamplerConfig struct {
	Buffer int `yaml:"buffer" toml:"buffer" env:"ADAPTUI_SAMPLER_BUFFER"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:     DefaultThemeConfig(),
		Haptics:   DefaultHapticsConfig(),
		Slider:    DefaultSliderConfig(),
		Wheel:     DefaultWheelConfig(),
		Animation: DefaultAnimationConfig(),
		Sampler:   SamplerConfig{Buffer: 256},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// IsTOML reports whether path selects the TOML format.
func IsTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load loads configuration from a YAML or TOML file (chosen by
// extension), then applies environment overrides. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if IsTOML(path) {
			err = toml.Unmarshal(data, cfg)
		} else {
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration as YAML or TOML, chosen by extension.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	if IsTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	} else {
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		buf.Write(data)
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies ADAPTUI_* environment variables on top of the
// loaded values.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// Validate reports every misconfiguration found.
func (c *Config) Validate() error {
	var errs []error
	errs = append(errs, c.Theme.validate()...)
	errs = append(errs, c.Haptics.validate()...)
	if c.Slider.TrackExtent < 2 {
		errs = append(errs, fmt.Errorf("slider.track_extent must be at least 2, got %d", c.Slider.TrackExtent))
	}
	if c.Slider.ThumbSize < 1 || c.Slider.ThumbSize > c.Slider.TrackExtent {
		errs = append(errs, fmt.Errorf("slider.thumb_size must be in [1, track_extent], got %d", c.Slider.ThumbSize))
	}
	errs = append(errs, c.Wheel.validate()...)
	errs = append(errs, c.Animation.validate()...)
	if c.Sampler.Buffer < 1 {
		errs = append(errs, fmt.Errorf("sampler.buffer must be positive, got %d", c.Sampler.Buffer))
	}
	if !slices.Contains(ValidLogLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels))
	}
	return errors.Join(errs...)
}

// parseDuration returns d parsed, or fallback when d is empty or invalid.
func parseDuration(d string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return v
}
