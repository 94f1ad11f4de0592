package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme.Accent != "#8BC34A" {
		t.Errorf("expected Accent=#8BC34A, got %s", cfg.Theme.Accent)
	}
	if cfg.Slider.TrackExtent != 40 {
		t.Errorf("expected TrackExtent=40, got %d", cfg.Slider.TrackExtent)
	}
	if cfg.Sampler.Buffer != 256 {
		t.Errorf("expected Buffer=256, got %d", cfg.Sampler.Buffer)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

func TestConfig_SaveLoad(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := DefaultConfig()
			cfg.Theme.Accent = "#FF5722"
			cfg.Haptics.Bell = true
			cfg.Wheel.VisibleSlots = 3
			cfg.Logging.Categories = map[string]bool{"gesture": false}

			require.NoError(t, cfg.Save(path))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\naccent = \"#2196F3\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#2196F3", cfg.Theme.Accent)
	assert.Equal(t, "auto", cfg.Theme.Mode)
	assert.Equal(t, 60, cfg.Animation.FPS)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ADAPTUI_ACCENT", "#9C27B0")
	t.Setenv("ADAPTUI_HAPTICS", "false")
	t.Setenv("ADAPTUI_FPS", "30")
	t.Setenv("ADAPTUI_LOG_LEVEL", "debug")
	t.Setenv("ADAPTUI_PULSE_INTERVAL", "40ms")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  accent: \"#000000\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#9C27B0", cfg.Theme.Accent, "environment wins over the file")
	assert.False(t, cfg.Haptics.Enabled)
	assert.Equal(t, 30, cfg.Animation.FPS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 40*time.Millisecond, cfg.Haptics.GetMinInterval())
}

func TestConfig_InvalidEnvOverride(t *testing.T) {
	t.Setenv("ADAPTUI_FPS", "fast")
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.Error(t, err)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"accent", func(c *Config) { c.Theme.Accent = "lime" }},
		{"mode", func(c *Config) { c.Theme.Mode = "sepia" }},
		{"interval", func(c *Config) { c.Haptics.MinInterval = "soon" }},
		{"track", func(c *Config) { c.Slider.TrackExtent = 1 }},
		{"thumb", func(c *Config) { c.Slider.ThumbSize = 41 }},
		{"item extent", func(c *Config) { c.Wheel.ItemExtent = 0 }},
		{"slots", func(c *Config) { c.Wheel.VisibleSlots = 9 }},
		{"decay", func(c *Config) { c.Wheel.Decay = 1 }},
		{"fps", func(c *Config) { c.Animation.FPS = 0 }},
		{"spring", func(c *Config) { c.Animation.SettleFrequency = 0 }},
		{"buffer", func(c *Config) { c.Sampler.Buffer = 0 }},
		{"level", func(c *Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme.Accent = "lime"
	cfg.Animation.FPS = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.accent")
	assert.Contains(t, err.Error(), "animation.fps")
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 15*time.Millisecond, HapticsConfig{MinInterval: "bogus"}.GetMinInterval())
	assert.Equal(t, time.Second/60, AnimationConfig{}.FrameInterval())
	assert.Equal(t, time.Second/120, AnimationConfig{FPS: 120}.FrameInterval())
}

func TestLoggingCategories(t *testing.T) {
	c := LoggingConfig{Level: "warn", Format: "json", Categories: map[string]bool{"ui": false}}
	assert.False(t, c.IsCategoryEnabled("ui"))
	assert.True(t, c.IsCategoryEnabled("gesture"))

	opts := c.Options()
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, c.Categories, opts.Categories)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		}, nil)
	}()

	updated := DefaultConfig()
	updated.Theme.Accent = "#00BCD4"

	// The watcher registers asynchronously; keep saving until it notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		require.NoError(t, updated.Save(path))
		select {
		case got := <-changes:
			// A read racing a save can see a truncated file.
			if got.Theme.Accent != "#00BCD4" {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, func(c *Config) {
			if c.Animation.FPS == 0 {
				t.Error("invalid config was applied")
			}
		}, func(err error) {
			select {
			case errs <- err:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		require.NoError(t, os.WriteFile(path, []byte("animation:\n  fps: 0\n"), 0644))
		select {
		case err := <-errs:
			if !strings.Contains(err.Error(), "animation.fps") {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("no rejection observed")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "config.yaml"), 0, func(*Config) {}, nil)
	assert.Error(t, err)
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	calls := make(chan struct{}, 4)
	for i := 0; i < 5; i++ {
		d.Debounce(func() { calls <- struct{}{} })
	}
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}
	select {
	case <-calls:
		t.Fatal("burst ran more than once")
	case <-time.After(60 * time.Millisecond):
	}

	d.Debounce(func() { calls <- struct{}{} })
	d.Cancel()
	select {
	case <-calls:
		t.Fatal("cancelled call ran")
	case <-time.After(60 * time.Millisecond):
	}
}
