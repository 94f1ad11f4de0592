package control

import (
	"fmt"
	"math"

	"adaptui/internal/gesture"
	"adaptui/internal/haptics"
	"adaptui/internal/motion"

	"go.uber.org/zap"
)

// Wheel is a scroll-based picker over a vertical item list. Crossing an
// item boundary pulses; only the momentum settle commits.
//
// Scroll, Settle, Cancel and Reset form the gesture side and must be
// called from one goroutine at a time. Host-visible state is written by
// posted tasks.
type Wheel struct {
	s        settings
	items    Options
	extent   float64
	onChange func(string)

	// gesture side
	session  *gesture.Session
	observed int

	// logic side
	offset    float64
	center    int
	committed int
}

// NewWheel builds a wheel. A selected value that is not in items starts
// the wheel at index 0.
func NewWheel(items []Option, selected string, itemExtent float64, onChange func(string), opts ...Setting) (*Wheel, error) {
	if !(itemExtent > 0) {
		return nil, fmt.Errorf("wheel item extent %v: %w", itemExtent, ErrInvalidConfig)
	}
	list, err := newOptions(items)
	if err != nil {
		return nil, err
	}
	idx := list.Index(selected)
	if idx < 0 {
		idx = 0
	}
	return &Wheel{
		s:         newSettings(opts),
		items:     list,
		extent:    itemExtent,
		onChange:  onChange,
		observed:  idx,
		offset:    float64(idx) * itemExtent,
		center:    idx,
		committed: idx,
	}, nil
}

// MaxOffset is the scroll extent.
func (w *Wheel) MaxOffset() float64 {
	return float64(w.items.Len()-1) * w.extent
}

// IndexAt returns the item index nearest to offset after clamping.
func (w *Wheel) IndexAt(offset float64) int {
	o := w.clamp(offset)
	return min(w.items.Len()-1, max(0, int(math.Round(o/w.extent))))
}

func (w *Wheel) clamp(offset float64) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	return math.Max(0, math.Min(w.MaxOffset(), offset))
}

// Scroll reports a scroll sample at offset. It updates the visual offset
// and pulses once per item boundary crossed, never committing.
func (w *Wheel) Scroll(offset float64) {
	o := w.clamp(offset)
	if w.session == nil {
		w.session = gesture.NewSession(o)
		w.s.log.Debug("wheel scroll start", w.session.Fields()...)
	}
	idx := w.IndexAt(o)
	crossed := idx != w.observed
	w.observed = idx
	w.s.post(func() {
		w.offset, w.center = o, idx
		if crossed {
			w.s.buzz(haptics.Light)
		}
	})
}

// Settle reports that momentum came to rest at offset. The nearest item
// becomes the selection and is reported to the host.
func (w *Wheel) Settle(offset float64) {
	idx := w.IndexAt(offset)
	if w.session != nil {
		w.s.log.Debug("wheel settle", zap.Stringer("session", w.session.ID), zap.Int("index", idx))
	}
	w.session = nil
	w.observed = idx
	value := w.items.At(idx).Value
	snapped := float64(idx) * w.extent
	w.s.post(func() {
		w.offset, w.center, w.committed = snapped, idx, idx
		if w.onChange != nil {
			w.onChange(value)
		}
	})
}

// Cancel drops the scroll session without committing.
func (w *Wheel) Cancel() {
	w.session = nil
}

// Reset moves the wheel to value from host state without a callback. An
// unknown value resets to index 0.
func (w *Wheel) Reset(value string) {
	idx := max(0, w.items.Index(value))
	w.session = nil
	w.observed = idx
	w.s.post(func() {
		w.offset = float64(idx) * w.extent
		w.center, w.committed = idx, idx
	})
}

// Offset returns the visual scroll offset.
func (w *Wheel) Offset() float64 { return w.offset }

// CenterIndex returns the item currently under the centre line.
func (w *Wheel) CenterIndex() int { return w.center }

// SelectedIndex returns the committed item index.
func (w *Wheel) SelectedIndex() int { return w.committed }

// Selected returns the committed item value.
func (w *Wheel) Selected() string { return w.items.At(w.committed).Value }

// Items returns the item list.
func (w *Wheel) Items() []Option { return w.items.List() }

// ItemExtent returns the distance between item rest positions.
func (w *Wheel) ItemExtent() float64 { return w.extent }

// WheelRow is one visible row of the wheel with its derived style.
type WheelRow struct {
	Index  int
	Option Option
	Style  motion.ItemStyle
}

// Rows returns the centred item and up to slots neighbours either side,
// top to bottom, styled from the current visual offset.
func (w *Wheel) Rows(slots int) []WheelRow {
	lo := max(0, w.center-slots)
	hi := min(w.items.Len()-1, w.center+slots)
	rows := make([]WheelRow, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		rows = append(rows, WheelRow{
			Index:  i,
			Option: w.items.At(i),
			Style:  motion.WheelItemStyle(w.offset, i, w.extent),
		})
	}
	return rows
}
