package control

import (
	"slices"

	"adaptui/internal/haptics"
	"adaptui/internal/motion"
)

// MultiSelect toggles membership with no cardinality limit.
type MultiSelect struct {
	s        settings
	options  Options
	onChange func([]string)

	selected  []string
	highlight *motion.Set
	scale     *motion.Set
}

// NewMultiSelect builds an unbounded multi-select group.
func NewMultiSelect(options []Option, selected []string, onChange func([]string), opts ...Setting) (*MultiSelect, error) {
	list, err := newOptions(options)
	if err != nil {
		return nil, err
	}
	if err := list.checkSelection(selected); err != nil {
		return nil, err
	}
	s := newSettings(opts)
	m := &MultiSelect{
		s:         s,
		options:   list,
		onChange:  onChange,
		selected:  slices.Clone(selected),
		highlight: motion.NewSet(s.settle, 0),
		scale:     motion.NewSet(s.pulse, 1),
	}
	for _, id := range selected {
		m.highlight.Get(id).Set(1)
	}
	return m, nil
}

// Toggle adds id if absent and removes it if present. Unknown ids are
// ignored.
func (m *MultiSelect) Toggle(id string) {
	m.s.post(func() {
		if !m.options.Has(id) {
			return
		}
		m.apply(id)
	})
}

// Deselect removes id if present.
func (m *MultiSelect) Deselect(id string) {
	m.s.post(func() {
		if !slices.Contains(m.selected, id) {
			return
		}
		m.apply(id)
	})
}

func (m *MultiSelect) apply(id string) {
	target := 1.0
	if i := slices.Index(m.selected, id); i >= 0 {
		m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
		target = 0
	} else {
		m.selected = append(slices.Clone(m.selected), id)
	}
	m.s.buzz(haptics.Medium)
	m.highlight.Get(id).AnimateTo(target)
	m.scale.Get(id).Kick(motion.SelectDipFrom, 1)
	if m.onChange != nil {
		m.onChange(slices.Clone(m.selected))
	}
}

// Selected returns the selected ids.
func (m *MultiSelect) Selected() []string { return slices.Clone(m.selected) }

// IsSelected reports whether id is selected.
func (m *MultiSelect) IsSelected(id string) bool { return slices.Contains(m.selected, id) }

// Options returns the option list.
func (m *MultiSelect) Options() []Option { return m.options.List() }

// Highlight returns id's selection transition factor in [0,1].
func (m *MultiSelect) Highlight(id string) float64 { return m.highlight.Pos(id) }

// Scale returns id's current scale; 1 at rest.
func (m *MultiSelect) Scale(id string) float64 { return m.scale.Pos(id) }

// Animate advances transitions one frame and reports whether any is still
// running.
func (m *MultiSelect) Animate() bool {
	a := m.highlight.Step()
	b := m.scale.Step()
	return a || b
}
