package config

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ThemeModes lists the accepted theme.mode values.
var ThemeModes = []string{"auto", "light", "dark"}

// ThemeConfig holds the colour token passed to every control.
type ThemeConfig struct {
	// Accent is the theme colour token (hex)
	Accent string `yaml:"accent" toml:"accent" env:"ADAPTUI_ACCENT"`

	// Mode picks the palette; auto asks the terminal
	Mode string `yaml:"mode" toml:"mode" env:"ADAPTUI_THEME"`
}

// DefaultThemeConfig returns the lime accent on an auto-detected palette.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{Accent: "#8BC34A", Mode: "auto"}
}

func (c ThemeConfig) validate() []error {
	var errs []error
	if !hexColor.MatchString(c.Accent) {
		errs = append(errs, fmt.Errorf("theme.accent must be #rrggbb, got %q", c.Accent))
	}
	if !slices.Contains(ThemeModes, c.Mode) {
		errs = append(errs, fmt.Errorf("invalid theme.mode: %s (valid: %v)", c.Mode, ThemeModes))
	}
	return errs
}

// HapticsConfig configures the feedback service.
type HapticsConfig struct {
	// Enabled is the master toggle; disabled pulses are discarded
	Enabled bool `yaml:"enabled" toml:"enabled" env:"ADAPTUI_HAPTICS"`

	// Bell rings the terminal bell for medium and heavy pulses
	Bell bool `yaml:"bell" toml:"bell" env:"ADAPTUI_BELL"`

	// MinInterval drops pulses that arrive closer together than this
	MinInterval string `yaml:"min_interval" toml:"min_interval" env:"ADAPTUI_PULSE_INTERVAL"`
}

// DefaultHapticsConfig enables pulses without the bell.
func DefaultHapticsConfig() HapticsConfig {
	return HapticsConfig{Enabled: true, Bell: false, MinInterval: "15ms"}
}

// GetMinInterval returns the pulse throttle interval.
func (c HapticsConfig) GetMinInterval() time.Duration {
	return parseDuration(c.MinInterval, 15*time.Millisecond)
}

func (c HapticsConfig) validate() []error {
	if c.MinInterval == "" {
		return nil
	}
	if _, err := time.ParseDuration(c.MinInterval); err != nil {
		return []error{fmt.Errorf("haptics.min_interval: %w", err)}
	}
	return nil
}

// SliderConfig holds the slider's fixed layout constants, in cells.
type SliderConfig struct {
	TrackExtent int `yaml:"track_extent" toml:"track_extent" env:"ADAPTUI_SLIDER_TRACK"`
	ThumbSize   int `yaml:"thumb_size" toml:"thumb_size"`
}

// DefaultSliderConfig returns a 40-cell track with a one-cell thumb.
func DefaultSliderConfig() SliderConfig {
	return SliderConfig{TrackExtent: 40, ThumbSize: 1}
}

// WheelConfig holds the wheel's layout and scroll tuning.
type WheelConfig struct {
	// ItemExtent is the distance between item rest positions, in rows
	ItemExtent float64 `yaml:"item_extent" toml:"item_extent"`

	// VisibleSlots is how many neighbours show on each side of the centre
	VisibleSlots int `yaml:"visible_slots" toml:"visible_slots"`

	// NotchVelocity is the velocity one wheel notch adds, in items/s
	NotchVelocity float64 `yaml:"notch_velocity" toml:"notch_velocity" env:"ADAPTUI_WHEEL_NOTCH"`

	// Decay is the fraction of velocity lost per second while coasting
	Decay float64 `yaml:"decay" toml:"decay"`
}

// DefaultWheelConfig returns the terminal wheel tuning.
func DefaultWheelConfig() WheelConfig {
	return WheelConfig{ItemExtent: 1, VisibleSlots: 2, NotchVelocity: 6, Decay: 0.95}
}

func (c WheelConfig) validate() []error {
	var errs []error
	if !(c.ItemExtent > 0) {
		errs = append(errs, fmt.Errorf("wheel.item_extent must be positive, got %v", c.ItemExtent))
	}
	if c.VisibleSlots < 0 || c.VisibleSlots > 5 {
		errs = append(errs, fmt.Errorf("wheel.visible_slots must be in [0, 5], got %d", c.VisibleSlots))
	}
	if !(c.Decay > 0 && c.Decay < 1) {
		errs = append(errs, fmt.Errorf("wheel.decay must be in (0, 1), got %v", c.Decay))
	}
	return errs
}

// AnimationConfig tunes frame rate and springs.
type AnimationConfig struct {
	FPS             int     `yaml:"fps" toml:"fps" env:"ADAPTUI_FPS"`
	PulseFrequency  float64 `yaml:"pulse_frequency" toml:"pulse_frequency"`
	PulseDamping    float64 `yaml:"pulse_damping" toml:"pulse_damping"`
	SettleFrequency float64 `yaml:"settle_frequency" toml:"settle_frequency"`
	SettleDamping   float64 `yaml:"settle_damping" toml:"settle_damping"`
}

// DefaultAnimationConfig returns 60 fps with a lively pulse spring and a
// critically damped settle spring.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		FPS:             60,
		PulseFrequency:  7.0,
		PulseDamping:    0.45,
		SettleFrequency: 9.0,
		SettleDamping:   1.0,
	}
}

// FrameInterval returns the time between animation frames.
func (c AnimationConfig) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

func (c AnimationConfig) validate() []error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("animation.fps must be in [1, 240], got %d", c.FPS))
	}
	if !(c.PulseFrequency > 0) || !(c.SettleFrequency > 0) {
		errs = append(errs, fmt.Errorf("animation spring frequencies must be positive"))
	}
	if c.PulseDamping < 0 || c.SettleDamping < 0 {
		errs = append(errs, fmt.Errorf("animation spring damping must not be negative"))
	}
	return errs
}
