package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/prompter/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Components take all keys while open
	if m.lyricEditor.IsVisible() {
		var cmd tea.Cmd
		var committed bool
		m.lyricEditor, cmd, committed = m.lyricEditor.Update(msg)
		if committed {
			return m, tea.Batch(cmd, m.commitText(m.lyricEditor.Value()))
		}
		return m, cmd
	}

	if m.searchModal.IsVisible() {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.save()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, Keys.PlayPause):
		m.transport.Toggle()
		return m, nil

	case key.Matches(msg, Keys.Stop):
		m.transport.Stop()
		return m, nil

	case key.Matches(msg, Keys.Rewind):
		m.transport.Rewind()
		return m, nil

	case key.Matches(msg, Keys.ToggleAuto):
		on, _ := m.params.Toggle(domain.ParamAutoScroll)
		m.save()
		return m, m.setStatus("auto scroll "+onOff(on), false)

	case key.Matches(msg, Keys.ToggleReset):
		on, _ := m.params.Toggle(domain.ParamResetOnStop)
		m.save()
		return m, m.setStatus("reset on stop "+onOff(on), false)

	case key.Matches(msg, Keys.ScrollUp):
		m.nudge(-m.manualStep)
		return m, nil

	case key.Matches(msg, Keys.ScrollDown):
		m.nudge(m.manualStep)
		return m, nil

	case key.Matches(msg, Keys.SetStart):
		return m, m.setBar(m.ctrl.SetStartBarToCurrent, "start", m.params.StartBar)

	case key.Matches(msg, Keys.SetEnd):
		return m, m.setBar(m.ctrl.SetEndBarToCurrent, "end", m.params.EndBar)

	case key.Matches(msg, Keys.FontUp):
		return m, m.stepFont(fontStep)

	case key.Matches(msg, Keys.FontDown):
		return m, m.stepFont(-fontStep)

	case key.Matches(msg, Keys.Theme):
		m.applyTheme(m.styles.Theme.Next())
		return m, nil

	case key.Matches(msg, Keys.Edit):
		m.lyricEditor.Show(m.text)
		return m, nil

	case key.Matches(msg, Keys.EditExternal):
		if m.editor == nil {
			return m, m.setStatus("no external editor configured", true)
		}
		return m, EditExternalCmd(m.editor, m.text)

	case key.Matches(msg, Keys.Search):
		m.searchModal.Show()
		return m, nil
	}

	return m, nil
}

// handleSearchKey routes keys to the line search modal and applies a pick
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.searchModal, cmd, submitted = m.searchModal.Update(msg)

	if submitted {
		if match, ok := m.searchModal.Selected(); ok {
			m.ctrl.JumpToLine(match.Line)
			m.save()
			m.searchModal.Hide()
			return m, tea.Batch(cmd, m.setStatus(fmt.Sprintf("scrolled to line %d", match.Line+1), false))
		}
		return m, cmd
	}

	if m.searchModal.QueryChanged() && m.search != nil {
		m.searchModal.SetResults(m.search.Search(m.searchModal.Query(), searchLimit))
	}
	return m, cmd
}
