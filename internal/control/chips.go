package control

import (
	"fmt"
	"slices"

	"adaptui/internal/haptics"
	"adaptui/internal/motion"

	"go.uber.org/zap"
)

// Chips is a bounded multi-select. Once the set is full, selecting a new
// chip evicts the oldest selection, so capacity never silently rejects a
// tap.
type Chips struct {
	s        settings
	options  Options
	max      int
	onChange func([]string)

	selected []string
	evicted  string
	scale    *motion.Set
}

// NewChips builds a chip group. max must be positive and selected must
// hold at most max known, distinct ids.
func NewChips(options []Option, selected []string, max int, onChange func([]string), opts ...Setting) (*Chips, error) {
	if max <= 0 {
		return nil, fmt.Errorf("chips cap %d: %w", max, ErrInvalidConfig)
	}
	list, err := newOptions(options)
	if err != nil {
		return nil, err
	}
	if err := list.checkSelection(selected); err != nil {
		return nil, err
	}
	if len(selected) > max {
		return nil, fmt.Errorf("%d chips selected with cap %d: %w", len(selected), max, ErrInvalidConfig)
	}
	s := newSettings(opts)
	return &Chips{
		s:        s,
		options:  list,
		max:      max,
		onChange: onChange,
		selected: slices.Clone(selected),
		scale:    motion.NewSet(s.pulse, 1),
	}, nil
}

// ToggleFIFO applies one chip toggle to sel under cap max and returns the
// new selection and the id evicted to make room, if any. sel is not
// modified.
func ToggleFIFO(sel []string, id string, max int) (next []string, evicted string) {
	if i := slices.Index(sel, id); i >= 0 {
		return slices.Delete(slices.Clone(sel), i, i+1), ""
	}
	if len(sel) < max {
		return append(slices.Clone(sel), id), ""
	}
	next = make([]string, 0, max)
	next = append(next, sel[len(sel)-max+1:]...)
	return append(next, id), sel[len(sel)-max]
}

// Toggle removes id if selected, otherwise appends it, evicting the
// oldest selection when the group is full. Unknown ids are ignored.
func (c *Chips) Toggle(id string) {
	c.s.post(func() {
		if !c.options.Has(id) {
			c.s.log.Debug("chips: unknown id", zap.String("id", id))
			return
		}
		c.apply(id)
	})
}

// Deselect removes id if it is selected and does nothing otherwise.
func (c *Chips) Deselect(id string) {
	c.s.post(func() {
		if !slices.Contains(c.selected, id) {
			return
		}
		c.apply(id)
	})
}

func (c *Chips) apply(id string) {
	c.selected, c.evicted = ToggleFIFO(c.selected, id, c.max)
	if c.evicted != "" {
		c.s.log.Debug("chips: evicted oldest", zap.String("evicted", c.evicted), zap.String("added", id))
	}
	c.s.buzz(haptics.Light)
	c.scale.Get(id).Kick(motion.ChipPulseFrom, 1)
	if c.onChange != nil {
		c.onChange(slices.Clone(c.selected))
	}
}

// Selected returns the selection in selection order.
func (c *Chips) Selected() []string { return slices.Clone(c.selected) }

// IsSelected reports whether id is selected.
func (c *Chips) IsSelected(id string) bool { return slices.Contains(c.selected, id) }

// Counter returns the derived "selected/max" pair.
func (c *Chips) Counter() (selected, max int) { return len(c.selected), c.max }

// Max returns the cap.
func (c *Chips) Max() int { return c.max }

// Evicted returns the id evicted by the most recent toggle, or "".
func (c *Chips) Evicted() string { return c.evicted }

// Options returns the option list.
func (c *Chips) Options() []Option { return c.options.List() }

// Scale returns id's current pulse scale; 1 at rest.
func (c *Chips) Scale(id string) float64 { return c.scale.Pos(id) }

// Animate advances pulse animations one frame and reports whether any is
// still running.
func (c *Chips) Animate() bool { return c.scale.Step() }
