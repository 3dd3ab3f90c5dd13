package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Transport
	PlayPause key.Binding
	Stop      key.Binding
	Rewind    key.Binding

	// Scrolling
	ToggleAuto  key.Binding
	ToggleReset key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	SetStart    key.Binding
	SetEnd      key.Binding

	// Display
	FontUp   key.Binding
	FontDown key.Binding
	Theme    key.Binding

	// Actions
	Edit         key.Binding
	EditExternal key.Binding
	Search       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Transport
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("0", "rewind"),
		),

		// Scrolling
		ToggleAuto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto scroll"),
		),
		ToggleReset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset on stop"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		SetStart: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "start = now"),
		),
		SetEnd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "end = now"),
		),

		// Display
		FontUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger"),
		),
		FontDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),

		// Actions
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		EditExternal: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit in $EDITOR"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find line"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// helpGroups orders bindings for the help screen
func helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{Keys.PlayPause, Keys.Stop, Keys.Rewind},
		{Keys.ToggleAuto, Keys.ToggleReset, Keys.ScrollUp, Keys.ScrollDown, Keys.SetStart, Keys.SetEnd},
		{Keys.FontUp, Keys.FontDown, Keys.Theme},
		{Keys.Edit, Keys.EditExternal, Keys.Search, Keys.Help, Keys.Quit},
	}
}
