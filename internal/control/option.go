// Package control implements the selection and continuous-input controls.
//
// Each control is a leaf: it is built from host-supplied state and a
// change callback, turns gestures into candidate values, applies its
// clamping, eviction or quantization rule, and reports every accepted
// mutation through the callback. Callbacks, haptic pulses and
// host-visible state writes are posted through a dispatch.Dispatcher, so
// the numeric work may run on a sampling goroutine while the host still
// observes one ordered stream of changes.
//
// Misconfiguration (empty option lists, a zero cap, min > max) is
// rejected at construction with an error wrapping ErrInvalidConfig.
// Gesture input is never rejected; it is clamped or normalized.
package control

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig is wrapped by every constructor error.
var ErrInvalidConfig = errors.New("invalid control configuration")

// Option is one selectable item supplied by the host.
type Option struct {
	Value       string
	Label       string
	Icon        string // emoji or glyph, optional
	Description string // secondary line, optional
}

// Options is an immutable option list with an id index.
type Options struct {
	list  []Option
	index map[string]int
}

func newOptions(list []Option) (Options, error) {
	if len(list) == 0 {
		return Options{}, fmt.Errorf("empty option list: %w", ErrInvalidConfig)
	}
	idx := make(map[string]int, len(list))
	for i, o := range list {
		if _, dup := idx[o.Value]; dup {
			return Options{}, fmt.Errorf("duplicate option value %q: %w", o.Value, ErrInvalidConfig)
		}
		idx[o.Value] = i
	}
	return Options{list: slices.Clone(list), index: idx}, nil
}

// List returns a copy of the options in host order.
func (o Options) List() []Option { return slices.Clone(o.list) }

// Len returns the number of options.
func (o Options) Len() int { return len(o.list) }

// At returns the option at i.
func (o Options) At(i int) Option { return o.list[i] }

// Index returns the position of id, or -1.
func (o Options) Index(id string) int {
	if i, ok := o.index[id]; ok {
		return i
	}
	return -1
}

// Has reports whether id is in the list.
func (o Options) Has(id string) bool {
	_, ok := o.index[id]
	return ok
}

// checkSelection verifies every id is known and appears once.
func (o Options) checkSelection(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !o.Has(id) {
			return fmt.Errorf("selected value %q not in options: %w", id, ErrInvalidConfig)
		}
		if seen[id] {
			return fmt.Errorf("selected value %q repeated: %w", id, ErrInvalidConfig)
		}
		seen[id] = true
	}
	return nil
}
