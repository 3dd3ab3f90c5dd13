package components

import "github.com/charmbracelet/bubbles/key"

// SearchKeyMap defines key bindings for the line search modal
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// DefaultSearchKeyMap returns the default line search key bindings
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to line"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// EditorKeyMap defines key bindings for the lyric editor
type EditorKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
}

// DefaultEditorKeyMap returns the default lyric editor key bindings
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard"),
		),
	}
}

// Global key map instances for components
var (
	SearchKeys = DefaultSearchKeyMap()
	EditorKeys = DefaultEditorKeyMap()
)
