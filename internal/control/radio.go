package control

import (
	"fmt"

	"adaptui/internal/haptics"
	"adaptui/internal/motion"
)

// Radio is a single-select group. Selecting replaces the choice; selecting
// the current choice again is a no-op.
type Radio struct {
	s        settings
	options  Options
	onChange func(string)

	selected  string
	highlight *motion.Set // 0 idle, 1 selected; drives the colour blend
	scale     *motion.Set
}

// NewRadio builds a radio group. selected may be "" for no choice.
func NewRadio(options []Option, selected string, onChange func(string), opts ...Setting) (*Radio, error) {
	list, err := newOptions(options)
	if err != nil {
		return nil, err
	}
	if selected != "" && !list.Has(selected) {
		return nil, fmt.Errorf("selected value %q not in options: %w", selected, ErrInvalidConfig)
	}
	s := newSettings(opts)
	r := &Radio{
		s:         s,
		options:   list,
		onChange:  onChange,
		selected:  selected,
		highlight: motion.NewSet(s.settle, 0),
		scale:     motion.NewSet(s.pulse, 1),
	}
	if selected != "" {
		r.highlight.Get(selected).Set(1)
	}
	return r, nil
}

// Select makes id the choice. Unknown ids and the current choice are
// ignored.
func (r *Radio) Select(id string) {
	r.s.post(func() {
		if id == r.selected || !r.options.Has(id) {
			return
		}
		if r.selected != "" {
			r.highlight.Get(r.selected).AnimateTo(0)
		}
		r.selected = id
		r.s.buzz(haptics.Medium)
		r.highlight.Get(id).AnimateTo(1)
		r.scale.Get(id).Kick(motion.SelectDipFrom, 1)
		if r.onChange != nil {
			r.onChange(id)
		}
	})
}

// Selected returns the choice, or "".
func (r *Radio) Selected() string { return r.selected }

// Options returns the option list.
func (r *Radio) Options() []Option { return r.options.List() }

// Highlight returns id's selection transition factor in [0,1].
func (r *Radio) Highlight(id string) float64 { return r.highlight.Pos(id) }

// Scale returns id's current scale; 1 at rest.
func (r *Radio) Scale(id string) float64 { return r.scale.Pos(id) }

// Animate advances transitions one frame and reports whether any is still
// running.
func (r *Radio) Animate() bool {
	a := r.highlight.Step()
	b := r.scale.Step()
	return a || b
}
