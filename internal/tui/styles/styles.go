package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a prompter colour palette
type Theme struct {
	Name       string
	Background lipgloss.Color
	Text       lipgloss.Color
	Highlight  lipgloss.Color
	Dim        lipgloss.Color
	Panel      lipgloss.Color
}

// Color palettes
var (
	Dark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#0F1115"),
		Text:       lipgloss.Color("#F2F2F2"),
		Highlight:  lipgloss.Color("#2F81F7"),
		Dim:        lipgloss.Color("#6B7280"),
		Panel:      lipgloss.Color("#1F2937"),
	}

	Light = Theme{
		Name:       "light",
		Background: lipgloss.Color("#F5E94B"),
		Text:       lipgloss.Color("#1A1A1A"),
		Highlight:  lipgloss.Color("#F58A1F"),
		Dim:        lipgloss.Color("#6B5E12"),
		Panel:      lipgloss.Color("#F5F1E8"),
	}

	Red   = lipgloss.Color("#EF4444")
	Green = lipgloss.Color("#10B981")
)

// ThemeByName returns the named theme, falling back to Dark
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, Light.Name) {
		return Light
	}
	return Dark
}

// Next returns the other theme
func (t Theme) Next() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}

// Styles are the rendered styles for one theme
type Styles struct {
	Theme Theme

	Sheet      lipgloss.Style
	Line       lipgloss.Style
	ActiveLine lipgloss.Style
	ActiveBand lipgloss.Style // rows of the active line without text

	Status      lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	Playing     lipgloss.Style
	Stopped     lipgloss.Style
	Error       lipgloss.Style
	Dim         lipgloss.Style
	Accent      lipgloss.Style

	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	SelectedMatch lipgloss.Style
	Match         lipgloss.Style
	MatchRune     lipgloss.Style
}

// New builds the styles for a theme
func New(t Theme) Styles {
	return Styles{
		Theme: t,

		Sheet: lipgloss.NewStyle().
			Background(t.Background),
		Line: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Background),
		ActiveLine: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Highlight).
			Bold(true),
		ActiveBand: lipgloss.NewStyle().
			Background(t.Highlight),

		Status: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Panel).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(t.Dim).
			Background(t.Panel),
		StatusValue: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Panel).
			Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(Green).
			Background(t.Panel).
			Bold(true),
		Stopped: lipgloss.NewStyle().
			Foreground(t.Dim).
			Background(t.Panel),
		Error: lipgloss.NewStyle().
			Foreground(Red),
		Dim: lipgloss.NewStyle().
			Foreground(t.Dim),
		Accent: lipgloss.NewStyle().
			Foreground(t.Highlight),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Highlight).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true),
		SelectedMatch: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Panel).
			Bold(true),
		Match: lipgloss.NewStyle().
			Foreground(t.Dim),
		MatchRune: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true),
	}
}

// Truncate shortens s to width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
