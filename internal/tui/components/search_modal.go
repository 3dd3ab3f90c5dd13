package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/prompter/internal/search"
	"github.com/mmcdole/prompter/internal/tui/styles"
)

const maxSearchResults = 8

// SearchModal is the lyric line search prompt
type SearchModal struct {
	input     textinput.Model
	results   []search.Match
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
	styles    styles.Styles
}

// NewSearchModal creates a new line search modal
func NewSearchModal(st styles.Styles) SearchModal {
	ti := textinput.New()
	ti.Placeholder = "Type to find a line..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "

	m := SearchModal{input: ti}
	m.SetStyles(st)
	return m
}

// SetStyles applies a theme to the modal
func (m *SearchModal) SetStyles(st styles.Styles) {
	m.styles = st
	m.input.PromptStyle = st.Accent
	m.input.PlaceholderStyle = st.Dim
}

// Show makes the modal visible and focuses the input
func (m *SearchModal) Show() {
	m.visible = true
	m.input.SetValue("")
	m.input.Focus()
	m.results = nil
	m.cursor = 0
	m.prevQuery = ""
}

// Hide dismisses the modal
func (m *SearchModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m SearchModal) IsVisible() bool {
	return m.visible
}

// SetSize updates the component dimensions
func (m *SearchModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, min(width*2/3, 80)-10)
}

// Query returns the current search query
func (m SearchModal) Query() string {
	return m.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (m *SearchModal) QueryChanged() bool {
	current := m.input.Value()
	if current != m.prevQuery {
		m.prevQuery = current
		return true
	}
	return false
}

// SetResults replaces the match list
func (m *SearchModal) SetResults(results []search.Match) {
	m.results = results
	m.cursor = 0
}

// Selected returns the highlighted match
func (m SearchModal) Selected() (search.Match, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return search.Match{}, false
	}
	return m.results[m.cursor], true
}

// Update handles input events, returns (modal, cmd, submitted)
func (m SearchModal) Update(msg tea.Msg) (SearchModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Escape):
			m.Hide()
			return m, nil, false

		case key.Matches(msg, SearchKeys.Enter):
			return m, nil, len(m.results) > 0

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxSearchResults)-1 {
				m.cursor++
			}
			return m, nil, false

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the modal
func (m SearchModal) View() string {
	if !m.visible {
		return ""
	}

	modalWidth := min(max(m.width*2/3, 40), 80)

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Find Line"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	m.renderResults(&b, modalWidth)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := m.styles.Modal.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m SearchModal) renderResults(b *strings.Builder, modalWidth int) {
	if len(m.results) == 0 {
		if m.input.Value() != "" {
			b.WriteString(m.styles.Dim.Render("No matching lines"))
		}
		return
	}

	shown := min(len(m.results), maxSearchResults)
	for i := 0; i < shown; i++ {
		r := m.results[i]
		selected := i == m.cursor

		num := m.styles.Dim.Render(fmt.Sprintf("%4d ", r.Line+1))
		text := styles.Truncate(r.Text, modalWidth-12)
		b.WriteString(num)
		b.WriteString(m.highlightMatches(text, r.MatchedIndexes, selected))
		b.WriteString("\n")
	}

	if len(m.results) > shown {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("... and %d more", len(m.results)-shown)))
	}
}

// highlightMatches renders text with matched runes emphasised
func (m SearchModal) highlightMatches(text string, matchedIndexes []int, selected bool) string {
	base := m.styles.Match
	if selected {
		base = m.styles.SelectedMatch
	}
	if len(matchedIndexes) == 0 {
		return base.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var result strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]
		start := i
		for i < len(runes) && matchSet[i] == isMatch {
			i++
		}
		chunk := string(runes[start:i])
		if isMatch {
			result.WriteString(m.styles.MatchRune.Inherit(base).Render(chunk))
		} else {
			result.WriteString(base.Render(chunk))
		}
	}
	return result.String()
}
