package control

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"adaptui/internal/gesture"
	"adaptui/internal/haptics"
	"adaptui/internal/motion"

	"go.uber.org/zap"
)

// SliderConfig fixes a slider's range and layout. TrackExtent and
// ThumbSize are in the host's pointer units (cells in the terminal host).
type SliderConfig struct {
	Min, Max    float64
	Step        float64
	TrackExtent float64
	ThumbSize   float64
	MinLabel    string // optional endpoint labels
	MaxLabel    string
}

func (c SliderConfig) validate() error {
	switch {
	case math.IsNaN(c.Min) || math.IsNaN(c.Max) || c.Min >= c.Max:
		return fmt.Errorf("slider range [%v, %v]: %w", c.Min, c.Max, ErrInvalidConfig)
	case !(c.Step > 0) || c.Step > c.Max-c.Min:
		return fmt.Errorf("slider step %v over range %v: %w", c.Step, c.Max-c.Min, ErrInvalidConfig)
	case !(c.TrackExtent > 0):
		return fmt.Errorf("slider track extent %v: %w", c.TrackExtent, ErrInvalidConfig)
	}
	return nil
}

// Quantize snaps raw to the nearest multiple of step from lo, with ties
// rounded away from lo, and clamps the result to [lo, hi]. A NaN raw
// value quantizes to lo.
func Quantize(raw, lo, hi, step float64) float64 {
	if math.IsNaN(raw) {
		return lo
	}
	n := math.Round((raw - lo) / step)
	v := lo + n*step
	// Shed multiply noise at the decimal precision of lo and step, so
	// 3 steps of 0.1 give 0.3.
	if d := max(decimals(lo), decimals(step)); d > 0 && d <= 308 {
		p := math.Pow10(d)
		if scaled := v * p; math.Abs(scaled) < 1<<52 {
			v = math.Round(scaled) / p
		}
	}
	return math.Max(lo, math.Min(hi, v))
}

// decimals reports how many fractional digits the shortest decimal form
// of f has.
func decimals(f float64) int {
	s := strconv.FormatFloat(math.Abs(f), 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	frac := 0
	if _, digits, ok := strings.Cut(mant, "."); ok {
		frac = len(digits)
	}
	return max(0, frac-e)
}

// OffsetValue maps a track offset to a raw, unquantized value. The offset
// is clamped to the track first; NaN maps to the track start.
func (c SliderConfig) OffsetValue(offset float64) float64 {
	if math.IsNaN(offset) {
		offset = 0
	}
	offset = math.Max(0, math.Min(c.TrackExtent, offset))
	return c.Min + offset/c.TrackExtent*(c.Max-c.Min)
}

// clamp limits value to the range; NaN becomes Min.
func (c SliderConfig) clamp(value float64) float64 {
	if math.IsNaN(value) {
		return c.Min
	}
	return math.Max(c.Min, math.Min(c.Max, value))
}

// ProgressOf returns the normalized position of value.
func (c SliderConfig) ProgressOf(value float64) float64 {
	return (value - c.Min) / (c.Max - c.Min)
}

// Slider maps drags along a track to a stepped value. It commits on every
// step-boundary crossing while dragging.
//
// Begin, Move, End, Cancel and Reset form the gesture side and must be
// called from one goroutine at a time (the sampler, or the logic loop when
// no sampler is used). Everything the host can observe is written by tasks
// posted through the dispatcher.
type Slider struct {
	s        settings
	cfg      SliderConfig
	onChange func(float64)

	// gesture side
	session      *gesture.Session
	last         float64
	lastProgress float64

	// logic side
	value    float64
	progress float64
	dragging bool
	thumb    *motion.Value
}

// NewSlider builds a slider. An out-of-range value is clamped; an
// in-range value is kept exactly, even off the step grid.
func NewSlider(cfg SliderConfig, value float64, onChange func(float64), opts ...Setting) (*Slider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	value = cfg.clamp(value)
	progress := cfg.ProgressOf(value)
	s := newSettings(opts)
	return &Slider{
		s:            s,
		cfg:          cfg,
		onChange:     onChange,
		last:         value,
		lastProgress: progress,
		value:        value,
		progress:     progress,
		thumb:        motion.NewValue(s.settle, progress),
	}, nil
}

// Begin starts a drag anchored at the thumb's current position. A Begin
// during a drag restarts the session from the last committed step.
func (sl *Slider) Begin() {
	sl.session = gesture.NewSession(sl.lastProgress * sl.cfg.TrackExtent)
	sl.s.log.Debug("slider drag start", sl.session.Fields()...)
	sl.s.post(func() { sl.dragging = true })
}

// Move applies the translation accumulated since Begin. Only a change of
// stepped value emits a pulse and a callback. Moves outside a drag and
// NaN samples are ignored.
func (sl *Slider) Move(translation float64) {
	if sl.session == nil || math.IsNaN(translation) {
		return
	}
	raw := sl.cfg.OffsetValue(sl.session.Reference + translation)
	stepped := Quantize(raw, sl.cfg.Min, sl.cfg.Max, sl.cfg.Step)
	if stepped == sl.last {
		return
	}
	progress := sl.cfg.ProgressOf(stepped)
	sl.last, sl.lastProgress = stepped, progress
	sl.s.post(func() {
		sl.s.buzz(haptics.Light)
		sl.value, sl.progress = stepped, progress
		sl.thumb.Set(progress)
		if sl.onChange != nil {
			sl.onChange(stepped)
		}
	})
}

// End finishes the drag. The thumb settles onto its own position; no value
// is computed.
func (sl *Slider) End() {
	if sl.session == nil {
		return
	}
	sl.s.log.Debug("slider drag end", zap.Stringer("session", sl.session.ID), zap.Duration("elapsed", sl.session.Elapsed()))
	sl.session = nil
	sl.s.post(func() {
		sl.dragging = false
		sl.thumb.AnimateTo(sl.progress)
	})
}

// Cancel discards the drag without a release snap. Values already
// reported stay reported.
func (sl *Slider) Cancel() {
	sl.session = nil
	sl.s.post(func() { sl.dragging = false })
}

// Reset resynchronizes the slider with host state. It emits no callback
// and no pulse, and ends any drag.
func (sl *Slider) Reset(value float64) {
	value = sl.cfg.clamp(value)
	progress := sl.cfg.ProgressOf(value)
	sl.session = nil
	sl.last, sl.lastProgress = value, progress
	sl.s.post(func() {
		sl.value, sl.progress = value, progress
		sl.dragging = false
		sl.thumb.Set(progress)
	})
}

// Value returns the last committed value.
func (sl *Slider) Value() float64 { return sl.value }

// Progress returns the normalized position of the committed value.
func (sl *Slider) Progress() float64 { return sl.progress }

// Thumb returns the animated visual position in [0,1].
func (sl *Slider) Thumb() float64 { return sl.thumb.Pos() }

// Dragging reports whether a drag is visibly in progress.
func (sl *Slider) Dragging() bool { return sl.dragging }

// Config returns the slider configuration.
func (sl *Slider) Config() SliderConfig { return sl.cfg }

// Animate advances the release snap one frame and reports whether it is
// still running.
func (sl *Slider) Animate() bool {
	sl.thumb.Step()
	return !sl.thumb.Done()
}
