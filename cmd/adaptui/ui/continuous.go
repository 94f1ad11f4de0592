package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"adaptui/internal/control"
	"adaptui/internal/gesture"
	"adaptui/internal/motion"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// feed hands gesture-side work to the sampling channel. Intermediate
// samples are dropped under backpressure. Session boundaries (begin, end,
// settle, reset) are held and retried on later frames, in order, and
// samples are dropped while any boundary is held.
type feed struct {
	try     func(func()) bool
	pending []func()
}

// sample submits an intermediate sample and reports whether it was taken.
func (f *feed) sample(fn func()) bool {
	if len(f.pending) > 0 {
		return false
	}
	return f.try(fn)
}

// boundary submits fn, holding it for retry if the channel is full.
func (f *feed) boundary(fn func()) {
	if len(f.pending) == 0 && f.try(fn) {
		return
	}
	f.pending = append(f.pending, fn)
}

// flush retries held boundaries and reports whether any remain.
func (f *feed) flush() bool {
	for len(f.pending) > 0 {
		if !f.try(f.pending[0]) {
			return true
		}
		f.pending = f.pending[1:]
	}
	return false
}

// sliderView hosts the continuous slider. Keyboard steps and mouse drags
// both arrive as Begin/Move/End sequences on the sampling channel.
type sliderView struct {
	name     string
	slider   *control.Slider
	feed     *feed
	format   func(float64) string
	pressX   int
	pressed  bool
	trackCol int // screen column of the first track cell, set by view
}

func (v *sliderView) title() string { return v.name }

// cellsPerStep is the track distance of one step.
func (v *sliderView) cellsPerStep() float64 {
	cfg := v.slider.Config()
	return cfg.Step / (cfg.Max - cfg.Min) * cfg.TrackExtent
}

func (v *sliderView) nudge(steps float64) {
	delta := steps * v.cellsPerStep()
	v.feed.boundary(func() {
		v.slider.Begin()
		v.slider.Move(delta)
		v.slider.End()
	})
}

func (v *sliderView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	switch {
	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Dec):
		v.nudge(-1)
		return true
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Inc):
		v.nudge(1)
		return true
	}
	return false
}

// handleMouse turns a press-drag-release on the track into a drag session.
// Translation is measured from the press point.
func (v *sliderView) handleMouse(msg tea.MouseMsg) bool {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.pressed, v.pressX = true, msg.X
		v.feed.boundary(v.slider.Begin)
		return true
	case msg.Action == tea.MouseActionMotion && v.pressed:
		translation := float64(msg.X - v.pressX)
		v.feed.sample(func() { v.slider.Move(translation) })
		return true
	case msg.Action == tea.MouseActionRelease && v.pressed:
		// The release position travels with End so a dropped motion
		// sample cannot leave the value behind.
		v.pressed = false
		translation := float64(msg.X - v.pressX)
		v.feed.boundary(func() {
			v.slider.Move(translation)
			v.slider.End()
		})
		return true
	}
	return false
}

func (v *sliderView) view(s Styles, focused bool, width int) string {
	cfg := v.slider.Config()
	track := int(cfg.TrackExtent)
	fill := motion.TrackFill(v.slider.Thumb(), track)
	thumb := min(track-1, fill)

	var b strings.Builder
	b.WriteString(s.Fill.Render(strings.Repeat("━", thumb)))
	glyph := "●"
	if v.slider.Dragging() {
		glyph = "◉"
	}
	b.WriteString(s.Thumb.Render(glyph))
	b.WriteString(s.Track.Render(strings.Repeat("─", max(0, track-thumb-1))))

	minLabel, maxLabel := cfg.MinLabel, cfg.MaxLabel
	if minLabel == "" {
		minLabel = v.format(cfg.Min)
	}
	if maxLabel == "" {
		maxLabel = v.format(cfg.Max)
	}
	v.trackCol = sectionInset + runewidth.StringWidth(minLabel) + 1

	head := s.Title.Render(v.name) + "  " + s.Badge.Render(v.format(v.slider.Value()))
	line := s.Muted.Render(minLabel) + " " + b.String() + " " + s.Muted.Render(maxLabel)
	return lipgloss.JoinVertical(lipgloss.Left, head, line)
}

func (v *sliderView) animate() bool { return v.slider.Animate() }

// wheelView hosts the scroll wheel picker. The momentum model runs on the
// logic channel; every frame's offset is forwarded to the wheel through
// the sampling channel.
type wheelView struct {
	name  string
	wheel *control.Wheel
	mom   *gesture.Momentum
	feed  *feed
	notch float64 // velocity per wheel notch, in offset units per second
	slots int
	width int

	dragY    int
	dragAt   time.Time
	dragVel  float64
	dragging bool
	now      func() time.Time
}

func (v *wheelView) title() string { return v.name }

func (v *wheelView) handleKey(msg tea.KeyMsg, keys KeyMap) bool {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		v.mom.Impulse(-v.notch)
		return true
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		v.mom.Impulse(v.notch)
		return true
	}
	return false
}

func (v *wheelView) handleMouse(msg tea.MouseMsg) bool {
	extent := v.wheel.ItemExtent()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.mom.Impulse(-v.notch)
		return true
	case msg.Button == tea.MouseButtonWheelDown:
		v.mom.Impulse(v.notch)
		return true
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.dragging, v.dragY, v.dragAt, v.dragVel = true, msg.Y, v.now(), 0
		v.mom.Drag(0)
		return true
	case msg.Action == tea.MouseActionMotion && v.dragging:
		// Dragging up brings later items to the centre.
		delta := float64(v.dragY-msg.Y) * extent
		now := v.now()
		if dt := now.Sub(v.dragAt).Seconds(); dt > 0 {
			v.dragVel = delta / dt
		}
		v.dragY, v.dragAt = msg.Y, now
		off := v.mom.Drag(delta)
		v.feed.sample(func() { v.wheel.Scroll(off) })
		return true
	case msg.Action == tea.MouseActionRelease && v.dragging:
		v.dragging = false
		v.mom.Release(v.dragVel)
		return true
	}
	return false
}

// frame advances momentum one step and forwards the result. It reports
// whether more frames are needed.
func (v *wheelView) frame() bool {
	if !v.mom.Active() {
		return false
	}
	off, settled := v.mom.Step()
	if settled {
		v.feed.boundary(func() { v.wheel.Settle(off) })
		return false
	}
	v.feed.sample(func() { v.wheel.Scroll(off) })
	return true
}

func (v *wheelView) view(s Styles, focused bool, width int) string {
	rows := v.wheel.Rows(v.slots)
	fg, bg := string(s.Theme.Foreground), string(s.Theme.Background)
	labelWidth := v.width
	if labelWidth <= 0 {
		labelWidth = 16
	}

	// Pad clipped ends so the centre row stays put.
	center := v.wheel.CenterIndex()
	var lines []string
	for i := center - v.slots; i < rows[0].Index; i++ {
		lines = append(lines, "")
	}
	for _, r := range rows {
		st := r.Style
		label := runewidth.Truncate(r.Option.Label, labelWidth, "…")
		// Shrunk rows are indented toward the centre line.
		indent := int(math.Round((1 - st.Scale) * 6))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(motion.Fade(fg, bg, st.Opacity)))
		marker := "  "
		if r.Index == center {
			style = style.Bold(true)
			marker = s.Cursor.Render("▶ ")
		}
		lines = append(lines, marker+strings.Repeat(" ", indent)+style.Render(label))
	}
	for i := rows[len(rows)-1].Index; i < center+v.slots; i++ {
		lines = append(lines, "")
	}

	head := s.Title.Render(v.name) + "  " + s.Badge.Render(v.wheel.Selected())
	if v.mom.Active() || v.dragging {
		head += "  " + s.Subtitle.Render("scrolling")
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{head}, lines...)...)
}

func (v *wheelView) animate() bool { return false }

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%s%%", formatNumber(f))
}
