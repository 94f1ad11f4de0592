package ui

import (
	"strings"
	"testing"

	"adaptui/internal/config"
	"adaptui/internal/haptics"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Theme.Mode = "dark"
	cfg.Haptics.MinInterval = "0s"
	return cfg
}

func newTestGallery(t *testing.T, cfg *config.Config) (*Gallery, *haptics.Recorder) {
	t.Helper()
	var rec haptics.Recorder
	g, err := NewGallery(Deps{Config: cfg, Pulser: &rec})
	require.NoError(t, err)
	return g, &rec
}

func press(g *Gallery, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		g.Update(msg)
	}
}

// runFrames steps the animation loop until it stops asking for frames.
func runFrames(t *testing.T, g *Gallery) {
	t.Helper()
	for i := 0; i < 5000; i++ {
		if _, cmd := g.Update(FrameMsg{}); cmd == nil {
			return
		}
	}
	t.Fatal("animation never came to rest")
}

func focusOn(g *Gallery, target section) {
	for g.sections[g.focus] != target {
		press(g, "tab")
	}
}

func TestGalleryChipsEvictOldest(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())

	// Cursor starts on Music, which is preselected.
	press(g, "right", "space", "right", "space", "right", "space")
	assert.Equal(t, []string{"travel", "food", "sport"}, g.Values().Interests)
	assert.Equal(t, "music", g.chips.chips.Evicted())
	assert.Equal(t, []haptics.Intensity{haptics.Light, haptics.Light, haptics.Light}, rec.Pulses())
}

func TestGalleryRadioAndMultiSelect(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())

	focusOn(g, g.radio)
	press(g, "space") // Calm is already selected
	assert.Zero(t, rec.Count())
	press(g, "right", "space")
	assert.Equal(t, "focus", g.Values().Mood)
	assert.Equal(t, []haptics.Intensity{haptics.Medium}, rec.Pulses())

	focusOn(g, g.multi)
	press(g, "right", "right", "space", "left", "space")
	assert.Equal(t, []string{"evening", "noon"}, g.Values().Reminders)
}

func TestGalleryCounterStopsAtBounds(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	focusOn(g, g.counter)

	press(g, "+")
	assert.Equal(t, 3, g.Values().Water)
	press(g, "-", "-", "-")
	assert.Equal(t, 0, g.Values().Water)
	before := rec.Count()

	press(g, "-")
	assert.Equal(t, 0, g.Values().Water)
	assert.Equal(t, before, rec.Count(), "a clamped press is silent")
	assert.Contains(t, g.View(), "0 glasses")
}

func TestGallerySliderSteps(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	focusOn(g, g.slider)

	press(g, "right")
	assert.Equal(t, 55.0, g.Values().Volume)
	press(g, "left", "left")
	assert.Equal(t, 45.0, g.Values().Volume)
	assert.Equal(t, 3, rec.Count())
	runFrames(t, g)
	assert.InDelta(t, 0.45, g.slider.slider.Thumb(), 1e-6)
}

func TestGallerySliderMouseDrag(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	g.View()

	z := g.zones[4]
	x := g.slider.trackCol + 5
	g.Update(tea.MouseMsg{X: x, Y: z.top + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.True(t, g.slider.slider.Dragging())
	// 40 cells over 0..100 is two cells per step of 5.
	g.Update(tea.MouseMsg{X: x + 4, Y: z.top + 1, Action: tea.MouseActionMotion})
	assert.Equal(t, 60.0, g.Values().Volume)
	g.Update(tea.MouseMsg{X: x + 4, Y: z.top + 30, Action: tea.MouseActionRelease})
	assert.False(t, g.slider.slider.Dragging())
	assert.Nil(t, g.captured)
}

func TestGallerySliderIgnoresPressOffTrack(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	g.View()

	z := g.zones[4]
	g.Update(tea.MouseMsg{X: 0, Y: z.top, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.False(t, g.slider.slider.Dragging())
}

func TestGalleryWheelCommitsOnRest(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	focusOn(g, g.wheel)

	press(g, "down")
	assert.Equal(t, "30", g.Values().Age, "nothing is reported while scrolling")
	runFrames(t, g)

	assert.Equal(t, "31", g.Values().Age)
	assert.Equal(t, "31", g.wheel.wheel.Selected())
	assert.Equal(t, 1, rec.Count(), "one boundary crossed")
}

func TestGalleryWheelMouseScroll(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	g.View()

	z := g.zones[5]
	g.Update(tea.MouseMsg{X: 4, Y: z.top + 2, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.True(t, g.wheel.mom.Active())
	assert.Equal(t, 5, g.focus, "pointer events focus the control under them")
	runFrames(t, g)
	assert.Equal(t, "29", g.Values().Age)
}

func TestGalleryReset(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	focusOn(g, g.slider)
	press(g, "right", "right")
	require.Equal(t, 60.0, g.Values().Volume)
	rec.Reset()

	press(g, "r")
	assert.Equal(t, 50.0, g.Values().Volume)
	assert.Equal(t, 50.0, g.slider.slider.Value())
	assert.Equal(t, "30", g.wheel.wheel.Selected())
	assert.Zero(t, rec.Count(), "host resync is silent")
}

func TestGalleryHapticsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Haptics.Enabled = false
	g, rec := newTestGallery(t, cfg)

	press(g, "right", "space")
	assert.Equal(t, []string{"music", "travel"}, g.Values().Interests)
	assert.Zero(t, rec.Count())
	assert.Contains(t, g.View(), "haptics off")
}

func TestGalleryAppliesReloadedConfig(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())

	next := testConfig()
	next.Theme.Accent = "#FF5722"
	next.Haptics.Enabled = false
	g.Update(ConfigMsg{Config: next})

	assert.Equal(t, "#FF5722", string(g.styles.Theme.Accent))
	assert.Contains(t, g.View(), "config reloaded")
	press(g, "right", "space")
	assert.Zero(t, rec.Count())
}

func TestGalleryView(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	g.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	out := g.View()
	for _, want := range []string{"Interests", "Mood", "Reminders", "Water", "Volume", "Age", "1/3", "30 years"} {
		assert.Contains(t, out, want)
	}
	require.Len(t, g.zones, 6)
	for i := 1; i < len(g.zones); i++ {
		assert.Greater(t, g.zones[i].top, g.zones[i-1].top)
	}
}

func TestGalleryQuit(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGalleryShowsErrors(t *testing.T) {
	g, _ := newTestGallery(t, testConfig())
	g.Update(ErrMsg{Err: assert.AnError})
	assert.True(t, strings.Contains(g.View(), assert.AnError.Error()))
}

// clickOption presses the left button on option i of a rendered section.
func clickOption(g *Gallery, zoneIndex int, hits *optionHits, i int) {
	sp := hits.spans[i]
	z := g.zones[zoneIndex]
	g.Update(tea.MouseMsg{
		X:      sectionInset + sp.col + 1,
		Y:      z.top + sp.row + 1,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	g.Update(tea.MouseMsg{X: 0, Y: z.top, Action: tea.MouseActionRelease})
}

func TestGalleryClickTogglesOptionUnderPointer(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	g.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	g.View()

	// The keyboard cursor sits on Music; the click lands on Tech.
	clickOption(g, 0, &g.chips.optionHits, 5)
	assert.Equal(t, []string{"music", "tech"}, g.Values().Interests)
	assert.Equal(t, 5, g.chips.cursor)
	assert.Equal(t, 1, rec.Count())

	g.View()
	clickOption(g, 1, &g.radio.optionHits, 2)
	assert.Equal(t, "energy", g.Values().Mood)
	assert.Equal(t, 1, g.focus)
}

func TestGalleryClickOutsideOptionsIsIgnored(t *testing.T) {
	g, rec := newTestGallery(t, testConfig())
	g.View()

	z := g.zones[0]
	g.Update(tea.MouseMsg{X: 2, Y: z.top, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, []string{"music"}, g.Values().Interests)
	assert.Zero(t, rec.Count())
}

func TestGalleryWheelSettleSurvivesFullSampler(t *testing.T) {
	full := false
	var rec haptics.Recorder
	g, err := NewGallery(Deps{
		Config: testConfig(),
		Pulser: &rec,
		Submit: func(fn func()) bool {
			if full {
				return false
			}
			fn()
			return true
		},
	})
	require.NoError(t, err)
	focusOn(g, g.wheel)

	press(g, "down")
	full = true
	for i := 0; i < 5000 && g.wheel.mom.Active(); i++ {
		g.Update(FrameMsg{})
	}
	require.False(t, g.wheel.mom.Active())
	assert.Equal(t, "30", g.Values().Age)
	assert.NotEmpty(t, g.feed.pending, "the settle is held, not dropped")

	full = false
	runFrames(t, g)
	assert.Equal(t, "31", g.Values().Age)
	assert.Empty(t, g.feed.pending)
}

func TestGallerySliderReleaseCarriesFinalPosition(t *testing.T) {
	full := false
	g, err := NewGallery(Deps{
		Config: testConfig(),
		Submit: func(fn func()) bool {
			if full {
				return false
			}
			fn()
			return true
		},
	})
	require.NoError(t, err)
	g.View()

	z := g.zones[4]
	x := g.slider.trackCol + 5
	g.Update(tea.MouseMsg{X: x, Y: z.top + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	full = true
	g.Update(tea.MouseMsg{X: x + 4, Y: z.top + 1, Action: tea.MouseActionMotion})
	assert.Equal(t, 50.0, g.Values().Volume, "motion sample was dropped")

	full = false
	g.Update(tea.MouseMsg{X: x + 4, Y: z.top + 1, Action: tea.MouseActionRelease})
	assert.Equal(t, 60.0, g.Values().Volume)
	assert.False(t, g.slider.slider.Dragging())
}
