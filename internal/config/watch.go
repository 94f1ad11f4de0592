package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"adaptui/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultReloadDelay batches the burst of events an editor save produces.
const DefaultReloadDelay = 150 * time.Millisecond

// Debouncer runs a function once calls stop arriving for the configured
// duration. Rapid successive calls reset the timer.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn, replacing any call still pending.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Watch reloads the config at path whenever it changes on disk and hands
// each valid result to onChange. Parse and validation failures go to
// onError and the previous config stays in effect. Watch blocks until ctx
// is cancelled.
//
// The parent directory is watched rather than the file so that editors
// which save by rename keep triggering reloads.
func Watch(ctx context.Context, path string, delay time.Duration, onChange func(*Config), onError func(error)) error {
	log := logging.Get(logging.CategoryConfig)
	if onError == nil {
		onError = func(error) {}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Debug("watching config", zap.String("path", abs))

	// Reloads run on the debouncer's timer goroutine; serialize them so
	// onChange never runs concurrently with itself.
	var reloadMu sync.Mutex
	reload := func() {
		reloadMu.Lock()
		defer reloadMu.Unlock()
		if ctx.Err() != nil {
			return
		}

		cfg, err := Load(abs)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.Warn("config reload rejected", zap.String("path", abs), zap.Error(err))
			onError(err)
			return
		}
		log.Info("config reloaded", zap.String("path", abs))
		onChange(cfg)
	}

	debouncer := NewDebouncer(delay)
	defer debouncer.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("config event", zap.String("op", event.Op.String()))
			debouncer.Debounce(reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))
			onError(err)
		}
	}
}
