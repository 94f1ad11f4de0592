// Package logging provides config-driven categorized logging for adaptui.
// Each category is a named child of one zap logger. Until Initialize is
// called every category logs to a no-op core, so the control packages stay
// silent when embedded in a host that does not configure logging.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup and shutdown
	CategoryGesture  Category = "gesture"  // Drag/scroll sessions and the sampler
	CategoryDispatch Category = "dispatch" // Logic-loop task marshalling
	CategoryHaptics  Category = "haptics"  // Feedback pulses
	CategoryControl  Category = "control"  // Value commits and rejections
	CategoryConfig   Category = "config"   // Config load, save and reload
	CategoryUI       Category = "ui"       // Terminal host rendering and input
)

// Options mirrors config.LoggingConfig to avoid circular imports.
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	File       string          // empty = stderr
	Categories map[string]bool // nil = all enabled
}

var (
	mu         sync.RWMutex
	root       = zap.NewNop()
	categories map[string]bool
	closeFile  func() error
)

// ParseLevel maps a config level string to a zap level. Unknown strings
// fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the root logger from opts. It may be called again to
// apply a reloaded configuration.
func Initialize(opts Options) error {
	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.DisableStacktrace = true

	var closer func() error
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		sink, cleanup, err := zap.Open(opts.File)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		closer = func() error { cleanup(); return nil }
		logger := zap.New(zapcore.NewCore(encoderFor(cfg), sink, cfg.Level))
		install(logger, opts.Categories, closer)
		return nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	install(logger, opts.Categories, closer)
	return nil
}

func encoderFor(cfg zap.Config) zapcore.Encoder {
	if cfg.Encoding == "json" {
		return zapcore.NewJSONEncoder(cfg.EncoderConfig)
	}
	return zapcore.NewConsoleEncoder(cfg.EncoderConfig)
}

func install(logger *zap.Logger, cats map[string]bool, closer func() error) {
	mu.Lock()
	prev := closeFile
	_ = root.Sync()
	root = logger
	categories = cats
	closeFile = closer
	mu.Unlock()

	if prev != nil {
		_ = prev()
	}
}

// Use installs an already-built logger as the root. Tests use it with the
// zaptest observer core.
func Use(logger *zap.Logger) {
	install(logger, nil, nil)
}

// Reset restores the silent default.
func Reset() {
	install(zap.NewNop(), nil, nil)
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	if categories == nil {
		return true
	}
	enabled, exists := categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns the logger for the given category. Disabled categories get
// a no-op logger.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}
