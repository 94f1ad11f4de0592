// Package ui is the terminal host for the adaptui controls: theme, key
// bindings, per-control views and the gallery model that owns the
// authoritative values.
package ui

import (
	"strings"

	"adaptui/internal/motion"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#dce0e5")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#8BC34A")
	DarkMuted      = lipgloss.Color("#5d6b82")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkCard       = lipgloss.Color("#1a2536")

	// Default theme colour token
	DefaultAccent = lipgloss.Color("#8BC34A")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     DefaultAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DefaultAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme asks the terminal for its background colour.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeFor resolves a configured mode ("auto", "light" or "dark") and
// accent token. An empty accent keeps the default.
func ThemeFor(mode, accent string) Theme {
	var t Theme
	switch mode {
	case "light":
		t = LightTheme()
	case "dark":
		t = DarkTheme()
	default:
		t = DetectTheme()
	}
	if accent != "" {
		t.Accent = lipgloss.Color(accent)
	}
	return t
}

// Palette returns the colours selectable options blend between.
func (t Theme) Palette() motion.Palette {
	return motion.Palette{
		Idle:   string(t.Border),
		Accent: string(t.Accent),
		Card:   string(t.Card),
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Section lipgloss.Style
	Focused lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Option   lipgloss.Style
	Cursor   lipgloss.Style
	Track    lipgloss.Style
	Fill     lipgloss.Style
	Thumb    lipgloss.Style
	Badge    lipgloss.Style
	Disabled lipgloss.Style
	Divider  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Background).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Section: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Border),

		Focused: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Option: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Track: lipgloss.NewStyle().
			Foreground(theme.Border),

		Fill: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Thumb: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background).
			Padding(0, 1).
			Bold(true),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Border),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(0, width)))
}
