package control

import (
	"fmt"
	"strconv"

	"adaptui/internal/haptics"
	"adaptui/internal/motion"
)

// Counter is an integer bounded to [min, max] with unit steps.
type Counter struct {
	s        settings
	min, max int
	unit     string
	onChange func(int)

	value int
	scale *motion.Value
}

// NewCounter builds a counter. min must not exceed max; value is clamped
// into range.
func NewCounter(value, min, max int, unit string, onChange func(int), opts ...Setting) (*Counter, error) {
	if min > max {
		return nil, fmt.Errorf("counter min %d > max %d: %w", min, max, ErrInvalidConfig)
	}
	s := newSettings(opts)
	return &Counter{
		s:        s,
		min:      min,
		max:      max,
		unit:     unit,
		onChange: onChange,
		value:    clampInt(value, min, max),
		scale:    motion.NewValue(s.pulse, 1),
	}, nil
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Increment adds one unless the counter is at max.
func (c *Counter) Increment() { c.step(1) }

// Decrement subtracts one unless the counter is at min.
func (c *Counter) Decrement() { c.step(-1) }

func (c *Counter) step(delta int) {
	c.s.post(func() {
		if (delta > 0 && c.value >= c.max) || (delta < 0 && c.value <= c.min) {
			return
		}
		next := c.value + delta
		c.value = next
		c.s.buzz(haptics.Medium)
		c.scale.Kick(motion.CounterBumpFrom, 1)
		if c.onChange != nil {
			c.onChange(next)
		}
	})
}

// Value returns the current value.
func (c *Counter) Value() int { return c.value }

// Min returns the lower bound.
func (c *Counter) Min() int { return c.min }

// Max returns the upper bound.
func (c *Counter) Max() int { return c.max }

// Unit returns the unit label.
func (c *Counter) Unit() string { return c.unit }

// CanIncrement reports whether Increment would be accepted.
func (c *Counter) CanIncrement() bool { return c.value < c.max }

// CanDecrement reports whether Decrement would be accepted.
func (c *Counter) CanDecrement() bool { return c.value > c.min }

// Text renders the value with its unit.
func (c *Counter) Text() string {
	if c.unit == "" {
		return strconv.Itoa(c.value)
	}
	return strconv.Itoa(c.value) + " " + c.unit
}

// Scale returns the bounce scale; 1 at rest.
func (c *Counter) Scale() float64 { return c.scale.Pos() }

// Animate advances the bounce one frame and reports whether it is still
// running.
func (c *Counter) Animate() bool {
	c.scale.Step()
	return !c.scale.Done()
}
