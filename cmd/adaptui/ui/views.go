package ui

import (
	"fmt"
	"strings"

	"adaptui/internal/control"
	"adaptui/internal/motion"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// section is one control on the gallery screen.
type section interface {
	title() string
	handleKey(msg tea.KeyMsg, keys KeyMap) bool
	view(s Styles, focused bool, width int) string
	animate() bool
}

// picker is a section whose options can be chosen with the pointer. x and
// y are relative to the section's content origin.
type picker interface {
	pick(x, y int) bool
}

// renderOption draws a selectable option from its transition factor t and
// spring scale. The terminal cannot scale text, so a dipped or shrunk
// option loses its inner padding for the frames it is below rest.
func renderOption(s Styles, opt control.Option, t, scale float64, cursor bool) string {
	st := motion.OptionStyle(s.Theme.Palette(), t, scale)
	label := opt.Label
	if opt.Icon != "" {
		label = opt.Icon + " " + label
	}
	box := s.Option.
		BorderForeground(lipgloss.Color(st.Border)).
		Background(lipgloss.Color(st.Background))
	if st.Scale < 0.97 {
		box = box.Padding(0, 0).Margin(0, 1)
	} else {
		box = box.Padding(0, 1)
	}
	if st.Scale > 1.03 || t > 0.5 {
		box = box.Bold(true)
	}
	if cursor {
		box = box.Underline(true)
	}
	return box.Render(label)
}

// optionSpan is where one rendered option landed, in cells relative to the
// section's content origin.
type optionSpan struct {
	row, col, width, height int
}

func (sp optionSpan) contains(x, y int) bool {
	return x >= sp.col && x < sp.col+sp.width && y >= sp.row && y < sp.row+sp.height
}

// optionHits remembers the option layout of the last render so pointer
// presses can be mapped back to an option.
type optionHits struct {
	spans []optionSpan
}

// at returns the index of the option under (x, y), or -1.
func (h *optionHits) at(x, y int) int {
	for i, sp := range h.spans {
		if sp.contains(x, y) {
			return i
		}
	}
	return -1
}

// wrapRow joins rendered boxes horizontally, wrapping at width, and
// records each box's span starting at line top.
func (h *optionHits) wrapRow(boxes []string, width, top int) string {
	h.spans = h.spans[:0]
	var rows []string
	var line []string
	used, row := 0, top
	flush := func() {
		joined := lipgloss.JoinHorizontal(lipgloss.Top, line...)
		rows = append(rows, joined)
		row += lipgloss.Height(joined)
		line, used = nil, 0
	}
	for _, b := range boxes {
		w := lipgloss.Width(b)
		if width > 0 && used > 0 && used+w > width {
			flush()
		}
		h.spans = append(h.spans, optionSpan{row: row, col: used, width: w, height: lipgloss.Height(b)})
		line = append(line, b)
		used += w
	}
	if len(line) > 0 {
		flush()
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func moveCursor(cursor, n int, msg tea.KeyMsg, keys KeyMap) (int, bool) {
	switch {
	case key.Matches(msg, keys.Left):
		return (cursor - 1 + n) % n, true
	case key.Matches(msg, keys.Right):
		return (cursor + 1) % n, true
	}
	return cursor, false
}

// chipsView hosts the bounded multi-select.
type chipsView struct {
	optionHits
	name   string
	chips  *control.Chips
	cursor int
}

func (v *chipsView) title() string { return v.name }

func (v *chipsView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	opts := v.chips.Options()
	if c, ok := moveCursor(v.cursor, len(opts), msg, keys); ok {
		v.cursor = c
		return true
	}
	if key.Matches(msg, keys.Toggle) {
		v.chips.Toggle(opts[v.cursor].Value)
		return true
	}
	return false
}

func (v *chipsView) pick(x, y int) bool {
	i := v.at(x, y)
	if i < 0 {
		return false
	}
	v.cursor = i
	v.chips.Toggle(v.chips.Options()[i].Value)
	return true
}

func (v *chipsView) view(s Styles, focused bool, width int) string {
	n, max := v.chips.Counter()
	head := s.Title.Render(v.name) + "  " + s.Badge.Render(fmt.Sprintf("%d/%d", n, max))
	if ev := v.chips.Evicted(); ev != "" {
		head += "  " + s.Subtitle.Render("dropped "+ev)
	}
	opts := v.chips.Options()
	boxes := make([]string, len(opts))
	for i, o := range opts {
		t := 0.0
		if v.chips.IsSelected(o.Value) {
			t = 1
		}
		boxes[i] = renderOption(s, o, t, v.chips.Scale(o.Value), focused && i == v.cursor)
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, v.wrapRow(boxes, width, lipgloss.Height(head)))
}

func (v *chipsView) animate() bool { return v.chips.Animate() }

// radioView hosts the single-select.
type radioView struct {
	optionHits
	name   string
	radio  *control.Radio
	cursor int
}

func (v *radioView) title() string { return v.name }

func (v *radioView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	opts := v.radio.Options()
	if c, ok := moveCursor(v.cursor, len(opts), msg, keys); ok {
		v.cursor = c
		return true
	}
	if key.Matches(msg, keys.Toggle) {
		v.radio.Select(opts[v.cursor].Value)
		return true
	}
	return false
}

func (v *radioView) pick(x, y int) bool {
	i := v.at(x, y)
	if i < 0 {
		return false
	}
	v.cursor = i
	v.radio.Select(v.radio.Options()[i].Value)
	return true
}

func (v *radioView) view(s Styles, focused bool, width int) string {
	opts := v.radio.Options()
	boxes := make([]string, len(opts))
	for i, o := range opts {
		boxes[i] = renderOption(s, o, v.radio.Highlight(o.Value), v.radio.Scale(o.Value), focused && i == v.cursor)
	}
	var desc string
	for _, o := range opts {
		if o.Value == v.radio.Selected() && o.Description != "" {
			desc = s.Subtitle.Render(o.Description)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(v.name), v.wrapRow(boxes, width, 1), desc)
}

func (v *radioView) animate() bool { return v.radio.Animate() }

// multiView hosts the unbounded multi-select.
type multiView struct {
	optionHits
	name   string
	multi  *control.MultiSelect
	cursor int
}

func (v *multiView) title() string { return v.name }

func (v *multiView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	opts := v.multi.Options()
	if c, ok := moveCursor(v.cursor, len(opts), msg, keys); ok {
		v.cursor = c
		return true
	}
	if key.Matches(msg, keys.Toggle) {
		v.multi.Toggle(opts[v.cursor].Value)
		return true
	}
	return false
}

func (v *multiView) pick(x, y int) bool {
	i := v.at(x, y)
	if i < 0 {
		return false
	}
	v.cursor = i
	v.multi.Toggle(v.multi.Options()[i].Value)
	return true
}

func (v *multiView) view(s Styles, focused bool, width int) string {
	opts := v.multi.Options()
	boxes := make([]string, len(opts))
	for i, o := range opts {
		mark := "○ "
		if v.multi.IsSelected(o.Value) {
			mark = "● "
		}
		o.Label = mark + o.Label
		boxes[i] = renderOption(s, o, v.multi.Highlight(o.Value), v.multi.Scale(o.Value), focused && i == v.cursor)
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(v.name), v.wrapRow(boxes, width, 1))
}

func (v *multiView) animate() bool { return v.multi.Animate() }

// counterView hosts the clamped counter.
type counterView struct {
	name    string
	counter *control.Counter
}

func (v *counterView) title() string { return v.name }

func (v *counterView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	switch {
	case key.Matches(msg, keys.Inc), key.Matches(msg, keys.Right):
		v.counter.Increment()
		return true
	case key.Matches(msg, keys.Dec), key.Matches(msg, keys.Left):
		v.counter.Decrement()
		return true
	}
	return false
}

func (v *counterView) view(s Styles, focused bool, width int) string {
	button := func(label string, enabled bool) string {
		if !enabled {
			return s.Disabled.Render("[" + label + "]")
		}
		if focused {
			return s.Cursor.Render("[" + label + "]")
		}
		return s.Body.Render("[" + label + "]")
	}
	value := s.Bold
	if v.counter.Scale() > 1.03 {
		value = value.Foreground(s.Theme.Accent)
	}
	line := strings.Join([]string{
		button("−", v.counter.CanDecrement()),
		value.Render(v.counter.Text()),
		button("+", v.counter.CanIncrement()),
	}, " ")
	bounds := s.Muted.Render(fmt.Sprintf("%d – %d", v.counter.Min(), v.counter.Max()))
	return lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(v.name), line+"  "+bounds)
}

func (v *counterView) animate() bool { return v.counter.Animate() }
