package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/prompter/internal/tui/styles"
)

// LyricEditor is the in-place lyric sheet editor
type LyricEditor struct {
	area    textarea.Model
	visible bool
	width   int
	height  int
	styles  styles.Styles
}

// NewLyricEditor creates a hidden lyric editor
func NewLyricEditor(st styles.Styles) LyricEditor {
	ta := textarea.New()
	ta.Placeholder = "Paste or type lyrics..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0

	e := LyricEditor{area: ta}
	e.SetStyles(st)
	return e
}

// SetStyles applies a theme to the editor
func (e *LyricEditor) SetStyles(st styles.Styles) {
	e.styles = st
	e.area.FocusedStyle.Text = st.Line
	e.area.FocusedStyle.CursorLine = st.Line
	e.area.FocusedStyle.Placeholder = st.Dim
	e.area.FocusedStyle.LineNumber = st.Dim
	e.area.BlurredStyle.Text = st.Dim
}

// Show opens the editor on text
func (e *LyricEditor) Show(text string) {
	e.visible = true
	e.area.SetValue(text)
	e.area.Focus()
}

// Hide closes the editor without committing
func (e *LyricEditor) Hide() {
	e.visible = false
	e.area.Blur()
}

// IsVisible returns whether the editor is shown
func (e LyricEditor) IsVisible() bool {
	return e.visible
}

// Value returns the edited text
func (e LyricEditor) Value() string {
	return e.area.Value()
}

// SetSize updates the component dimensions
func (e *LyricEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.area.SetWidth(max(10, width-4))
	e.area.SetHeight(max(3, height-4))
}

// Update handles input events, returns (editor, cmd, committed)
func (e LyricEditor) Update(msg tea.Msg) (LyricEditor, tea.Cmd, bool) {
	if !e.visible {
		return e, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, EditorKeys.Save):
			e.Hide()
			return e, nil, true
		case key.Matches(msg, EditorKeys.Cancel):
			e.Hide()
			return e, nil, false
		}
	}

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return e, cmd, false
}

// View renders the editor
func (e LyricEditor) View() string {
	if !e.visible {
		return ""
	}

	title := e.styles.ModalTitle.Render("Edit Lyrics")
	hint := e.styles.Dim.Render(EditorKeys.Save.Help().Key + " save  " + EditorKeys.Cancel.Help().Key + " discard")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", hint),
		"",
		e.area.View(),
	)
}
