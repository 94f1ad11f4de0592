package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"adaptui/internal/config"
	"adaptui/internal/control"
	"adaptui/internal/dispatch"
	"adaptui/internal/gesture"
	"adaptui/internal/haptics"
	"adaptui/internal/logging"
	"adaptui/internal/motion"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Values is the host-owned state every control reports into. Controls
// never hold it; they hand each committed value to a callback.
type Values struct {
	Interests []string
	Mood      string
	Reminders []string
	Water     int
	Volume    float64
	Age       string
}

// DefaultValues is where the gallery starts and what Reset restores.
func DefaultValues() Values {
	return Values{
		Interests: []string{"music"},
		Mood:      "calm",
		Water:     2,
		Volume:    50,
		Age:       "30",
	}
}

// ConfigMsg delivers a reloaded configuration.
type ConfigMsg struct{ Config *config.Config }

// ErrMsg reports a background failure, such as a rejected reload.
type ErrMsg struct{ Err error }

// Deps wires a Gallery to its environment.
type Deps struct {
	Config *config.Config

	// Pulser receives every pulse after throttling. Nil disables device
	// feedback; the on-screen indicator still flashes.
	Pulser haptics.Pulser

	// Dispatch carries effects posted from the sampling channel back to
	// the logic channel. Nil runs them inline.
	Dispatch dispatch.Dispatcher

	// Submit runs gesture-side work on the sampling channel without
	// blocking and reports whether it was taken. Refused session
	// boundaries are retried on later frames. Nil runs work inline.
	Submit func(func()) bool

	Logger *zap.Logger
}

type zone struct {
	top, height int
}

func (z zone) contains(y int) bool { return y >= z.top && y < z.top+z.height }

// Gallery is the bubbletea model hosting all six controls.
type Gallery struct {
	cfg    *config.Config
	keys   KeyMap
	help   help.Model
	styles Styles
	log    *zap.Logger

	values   Values
	sections []section
	focus    int
	zones    []zone
	captured section // receives mouse motion until release

	chips   *chipsView
	radio   *radioView
	multi   *multiView
	counter *counterView
	slider  *sliderView
	wheel   *wheelView

	feed       *feed
	hapticsOn  bool
	lastPulse  haptics.Intensity
	pulseCount int
	flash      int // frames the pulse indicator stays lit

	width   int
	ticking bool
	status  string
	err     error
}

var (
	interestOptions = []control.Option{
		{Value: "music", Label: "Music", Icon: "♪"},
		{Value: "travel", Label: "Travel", Icon: "✈"},
		{Value: "food", Label: "Food", Icon: "☕"},
		{Value: "sport", Label: "Sport", Icon: "⚽"},
		{Value: "art", Label: "Art", Icon: "✎"},
		{Value: "tech", Label: "Tech", Icon: "⌘"},
	}
	moodOptions = []control.Option{
		{Value: "calm", Label: "Calm", Description: "Slow down and breathe"},
		{Value: "focus", Label: "Focus", Description: "Deep work, no interruptions"},
		{Value: "energy", Label: "Energy", Description: "Upbeat and moving"},
	}
	reminderOptions = []control.Option{
		{Value: "morning", Label: "Morning"},
		{Value: "noon", Label: "Noon"},
		{Value: "evening", Label: "Evening"},
		{Value: "night", Label: "Night"},
	}
)

const maxInterests = 3

func ageOptions() []control.Option {
	opts := make([]control.Option, 0, 82)
	for a := 18; a <= 99; a++ {
		v := fmt.Sprint(a)
		opts = append(opts, control.Option{Value: v, Label: v + " years"})
	}
	return opts
}

// NewGallery builds the gallery and its controls.
func NewGallery(deps Deps) (*Gallery, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	g := &Gallery{
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(ThemeFor(cfg.Theme.Mode, cfg.Theme.Accent)),
		log:       deps.Logger,
		values:    DefaultValues(),
		hapticsOn: cfg.Haptics.Enabled,
	}
	if g.log == nil {
		g.log = logging.Get(logging.CategoryUI)
	}

	try := deps.Submit
	if try == nil {
		try = func(fn func()) bool { fn(); return true }
	}
	g.feed = &feed{try: try}
	effects := deps.Dispatch
	if effects == nil {
		effects = dispatch.Immediate{}
	}

	pulser := g.pulser(deps.Pulser)
	springs := control.WithSprings(
		motion.SpringConfig{FPS: cfg.Animation.FPS, Frequency: cfg.Animation.PulseFrequency, Damping: cfg.Animation.PulseDamping},
		motion.SpringConfig{FPS: cfg.Animation.FPS, Frequency: cfg.Animation.SettleFrequency, Damping: cfg.Animation.SettleDamping},
	)
	// Discrete controls are driven from Update, which is already the
	// logic channel, so their effects run inline.
	discrete := []control.Setting{control.WithPulser(pulser), springs, control.WithLogger(logging.Get(logging.CategoryControl))}
	continuous := append(slices.Clone(discrete), control.WithDispatcher(effects))

	v := g.values
	chips, err := control.NewChips(interestOptions, v.Interests, maxInterests, func(sel []string) {
		g.values.Interests = sel
		g.changed("interests", strings.Join(sel, ", "))
	}, discrete...)
	if err != nil {
		return nil, err
	}
	radio, err := control.NewRadio(moodOptions, v.Mood, func(sel string) {
		g.values.Mood = sel
		g.changed("mood", sel)
	}, discrete...)
	if err != nil {
		return nil, err
	}
	multi, err := control.NewMultiSelect(reminderOptions, v.Reminders, func(sel []string) {
		g.values.Reminders = sel
		g.changed("reminders", strings.Join(sel, ", "))
	}, discrete...)
	if err != nil {
		return nil, err
	}
	counter, err := control.NewCounter(v.Water, 0, 12, "glasses", func(n int) {
		g.values.Water = n
		g.changed("water", fmt.Sprint(n))
	}, discrete...)
	if err != nil {
		return nil, err
	}
	slider, err := control.NewSlider(control.SliderConfig{
		Min:         0,
		Max:         100,
		Step:        5,
		TrackExtent: float64(cfg.Slider.TrackExtent),
		ThumbSize:   float64(cfg.Slider.ThumbSize),
		MinLabel:    "quiet",
		MaxLabel:    "loud",
	}, v.Volume, func(f float64) {
		g.values.Volume = f
		g.changed("volume", formatPercent(f))
	}, continuous...)
	if err != nil {
		return nil, err
	}
	ages := ageOptions()
	wheel, err := control.NewWheel(ages, v.Age, cfg.Wheel.ItemExtent, func(sel string) {
		g.values.Age = sel
		g.changed("age", sel)
	}, continuous...)
	if err != nil {
		return nil, err
	}

	momCfg := gesture.DefaultMomentumConfig(len(ages), cfg.Wheel.ItemExtent)
	momCfg.FPS = cfg.Animation.FPS
	momCfg.Decay = cfg.Wheel.Decay

	g.chips = &chipsView{name: "Interests", chips: chips}
	g.radio = &radioView{name: "Mood", radio: radio}
	g.multi = &multiView{name: "Reminders", multi: multi}
	g.counter = &counterView{name: "Water", counter: counter}
	g.slider = &sliderView{name: "Volume", slider: slider, feed: g.feed, format: formatPercent}
	g.wheel = &wheelView{
		name:  "Age",
		wheel: wheel,
		mom:   gesture.NewMomentum(momCfg, wheel.Offset()),
		feed:  g.feed,
		notch: cfg.Wheel.NotchVelocity * cfg.Wheel.ItemExtent,
		slots: cfg.Wheel.VisibleSlots,
		now:   time.Now,
	}
	g.sections = []section{g.chips, g.radio, g.multi, g.counter, g.slider, g.wheel}
	return g, nil
}

// pulser builds the feedback chain: master switch, throttle, then the
// on-screen indicator plus the device.
func (g *Gallery) pulser(device haptics.Pulser) haptics.Pulser {
	indicator := haptics.Func(func(i haptics.Intensity) error {
		g.lastPulse = i
		g.pulseCount++
		g.flash = 8
		return nil
	})
	out := haptics.Fanout{indicator}
	if device != nil {
		out = append(out, device)
	}
	throttled := haptics.NewThrottle(out, g.cfg.Haptics.GetMinInterval())
	gated := haptics.Func(func(i haptics.Intensity) error {
		if !g.hapticsOn {
			return nil
		}
		return throttled.Pulse(i)
	})
	return haptics.Logged{Next: gated, Logger: logging.Get(logging.CategoryHaptics)}
}

func (g *Gallery) changed(name, value string) {
	g.status = fmt.Sprintf("%s → %s", name, value)
	g.log.Debug("value committed", zap.String("control", name), zap.String("value", value))
}

// Values returns the host-owned state.
func (g *Gallery) Values() Values { return g.values }

// Reset restores the defaults as a host-initiated change. The continuous
// controls are resynchronized without callbacks or pulses.
func (g *Gallery) Reset() {
	d := DefaultValues()
	g.values.Volume, g.values.Age = d.Volume, d.Age
	slider, wheel := g.slider.slider, g.wheel.wheel
	idx := max(0, slices.IndexFunc(wheel.Items(), func(o control.Option) bool { return o.Value == d.Age }))
	g.wheel.mom.Jump(float64(idx) * wheel.ItemExtent())
	g.feed.boundary(func() {
		slider.Reset(d.Volume)
		wheel.Reset(d.Age)
	})
	g.status = "volume and age reset"
}

// Init implements tea.Model.
func (g *Gallery) Init() tea.Cmd {
	return nil
}

func (g *Gallery) frame() tea.Cmd {
	if g.ticking {
		return nil
	}
	g.ticking = true
	return tea.Tick(g.cfg.Animation.FrameInterval(), func(time.Time) tea.Msg { return FrameMsg{} })
}

// Update implements tea.Model.
func (g *Gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.help.Width = msg.Width
		return g, nil

	case EffectMsg:
		msg()
		return g, g.frame()

	case FrameMsg:
		g.ticking = false
		active := g.feed.flush()
		for _, s := range g.sections {
			if s.animate() {
				active = true
			}
		}
		if g.wheel.frame() {
			active = true
		}
		if g.flash > 0 {
			g.flash--
			active = true
		}
		if active {
			return g, g.frame()
		}
		return g, nil

	case ConfigMsg:
		g.apply(msg.Config)
		return g, nil

	case ErrMsg:
		g.err = msg.Err
		return g, nil

	case tea.KeyMsg:
		return g, g.handleKey(msg)

	case tea.MouseMsg:
		return g, g.handleMouse(msg)
	}
	return g, nil
}

func (g *Gallery) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, g.keys.Quit):
		return tea.Quit
	case key.Matches(msg, g.keys.Help):
		g.help.ShowAll = !g.help.ShowAll
		return nil
	case key.Matches(msg, g.keys.Next):
		g.focus = (g.focus + 1) % len(g.sections)
		return nil
	case key.Matches(msg, g.keys.Prev):
		g.focus = (g.focus - 1 + len(g.sections)) % len(g.sections)
		return nil
	case msg.String() == "r":
		g.Reset()
		return g.frame()
	}
	if g.sections[g.focus].handleKey(msg, g.keys) {
		return g.frame()
	}
	return nil
}

func (g *Gallery) handleMouse(msg tea.MouseMsg) tea.Cmd {
	target := g.captured
	if target == nil {
		for i, z := range g.zones {
			if z.contains(msg.Y) {
				target = g.sections[i]
				if msg.Action == tea.MouseActionPress {
					g.focus = i
				}
				break
			}
		}
	}
	if target == nil {
		return nil
	}

	var handled bool
	switch t := target.(type) {
	case *sliderView:
		// Drags start only on the track line.
		if g.captured == nil && msg.Action == tea.MouseActionPress && !g.onTrack(msg) {
			return nil
		}
		handled = t.handleMouse(msg)
	case *wheelView:
		handled = t.handleMouse(msg)
	case picker:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			z := g.zones[slices.Index(g.sections, target)]
			handled = t.pick(msg.X-sectionInset, msg.Y-z.top)
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && handled {
			g.captured = target
		}
	case tea.MouseActionRelease:
		g.captured = nil
	}
	if handled {
		return g.frame()
	}
	return nil
}

// sectionInset is the section frame's left border plus padding.
const sectionInset = 3

func (g *Gallery) onTrack(msg tea.MouseMsg) bool {
	z := g.zones[slices.Index(g.sections, section(g.slider))]
	track := int(g.slider.slider.Config().TrackExtent)
	return msg.Y == z.top+1 && msg.X >= g.slider.trackCol && msg.X < g.slider.trackCol+track
}

// apply takes the live-reloadable parts of a new configuration: theme and
// the haptics switch. Layout changes need a restart.
func (g *Gallery) apply(cfg *config.Config) {
	g.cfg.Theme = cfg.Theme
	g.cfg.Haptics.Enabled = cfg.Haptics.Enabled
	g.hapticsOn = cfg.Haptics.Enabled
	g.styles = NewStyles(ThemeFor(cfg.Theme.Mode, cfg.Theme.Accent))
	g.err = nil
	g.status = "config reloaded"
	g.log.Info("config applied", zap.String("accent", cfg.Theme.Accent), zap.Bool("haptics", cfg.Haptics.Enabled))
}

// View implements tea.Model.
func (g *Gallery) View() string {
	s := g.styles
	width := g.width
	if width <= 0 {
		width = 80
	}
	inner := max(20, width-4)

	header := s.Header.Render("adaptui") + " " + s.Subtitle.Render("selection & continuous-input controls")
	blocks := []string{header, ""}
	row := lipgloss.Height(header) + 1

	g.zones = g.zones[:0]
	for i, sec := range g.sections {
		frame := s.Section
		if i == g.focus {
			frame = s.Focused
		}
		block := frame.Render(sec.view(s, i == g.focus, inner))
		h := lipgloss.Height(block)
		g.zones = append(g.zones, zone{top: row, height: h})
		blocks = append(blocks, block, "")
		row += h + 1
	}

	blocks = append(blocks, g.statusLine(), s.Footer.Render(g.help.View(g.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (g *Gallery) statusLine() string {
	s := g.styles
	pulse := s.Disabled.Render("○ haptics off")
	if g.hapticsOn {
		pulse = s.Muted.Render("○ " + fmt.Sprint(g.pulseCount))
		if g.flash > 0 {
			pulse = s.Cursor.Render(fmt.Sprintf("◉ %s %d", g.lastPulse, g.pulseCount))
		}
	}
	line := pulse
	if g.status != "" {
		line += "  " + s.Body.Render(g.status)
	}
	if g.err != nil {
		line += "  " + s.Error.Render(g.err.Error())
	}
	return s.Footer.Render(line)
}
