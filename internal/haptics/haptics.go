// Package haptics defines the feedback-service capability the controls use
// to signal discrete value transitions, plus the implementations the
// terminal host and tests plug in.
//
// Controls never fail because feedback failed: a Pulser error is logged
// and dropped.
package haptics

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Intensity is the strength of a single pulse.
type Intensity int

const (
	Light Intensity = iota
	Medium
	Heavy
)

func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Pulser delivers one tactile pulse.
type Pulser interface {
	Pulse(Intensity) error
}

// Nop discards every pulse.
type Nop struct{}

func (Nop) Pulse(Intensity) error { return nil }

// Func adapts a function to a Pulser.
type Func func(Intensity) error

func (f Func) Pulse(i Intensity) error { return f(i) }

// Fanout delivers each pulse to every Pulser in order and joins their
// errors.
type Fanout []Pulser

func (f Fanout) Pulse(i Intensity) error {
	var errs []error
	for _, p := range f {
		if err := p.Pulse(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logged decorates a Pulser with debug logging of every pulse and of
// delivery failures.
type Logged struct {
	Next   Pulser
	Logger *zap.Logger
}

func (l Logged) Pulse(i Intensity) error {
	err := l.Next.Pulse(i)
	if l.Logger != nil {
		if err != nil {
			l.Logger.Debug("pulse failed", zap.Stringer("intensity", i), zap.Error(err))
		} else {
			l.Logger.Debug("pulse", zap.Stringer("intensity", i))
		}
	}
	return err
}

// Throttle drops pulses that arrive sooner than Interval after the last
// delivered one. A stronger pulse is never dropped in favour of a weaker
// one that preceded it.
type Throttle struct {
	Next     Pulser
	Interval time.Duration

	mu       sync.Mutex
	now      func() time.Time
	last     time.Time
	lastKind Intensity
}

// NewThrottle wraps next.
func NewThrottle(next Pulser, interval time.Duration) *Throttle {
	return &Throttle{Next: next, Interval: interval, now: time.Now}
}

func (t *Throttle) Pulse(i Intensity) error {
	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval && i <= t.lastKind {
		t.mu.Unlock()
		return nil
	}
	t.last = now
	t.lastKind = i
	t.mu.Unlock()
	return t.Next.Pulse(i)
}
