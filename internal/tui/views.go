package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.lyricEditor.IsVisible() {
		return m.lyricEditor.View()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	if m.searchModal.IsVisible() {
		body = lipgloss.Place(m.width, m.sheetRows(),
			lipgloss.Center, lipgloss.Center,
			m.searchModal.View())
	} else {
		body = renderSheet(m.styles, m.lines, m.ctrl.Layout(), m.ctrl.Offset(), m.ctrl.ActiveLine(), m.width, m.sheetRows())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderStatus(),
		m.renderHints(),
	)
}

// renderStatus renders the transport and range status bar
func (m Model) renderStatus() string {
	st := m.styles
	snap := m.ctrl.Transport()

	var play string
	switch {
	case !snap.Valid:
		play = st.Stopped.Render("■ NO SYNC")
	case snap.IsPlaying:
		play = st.Playing.Render("▶ PLAYING")
	default:
		play = st.Stopped.Render("■ STOPPED")
	}

	bar := "--"
	if snap.Valid {
		bar = fmt.Sprintf("%.2f", snap.BarPosition)
	}

	mode := "MANUAL"
	if m.params.AutoScroll() {
		mode = "AUTO"
	}

	field := func(k, v string) string {
		return st.StatusKey.Render(k+" ") + st.StatusValue.Render(v)
	}
	gap := st.StatusKey.Render("  ")

	left := strings.Join([]string{
		play,
		field("bar", bar),
		field("line", fmt.Sprintf("%d/%d", m.ctrl.ActiveLine()+1, len(m.lines))),
		field("mode", mode),
		field("start", formatBar(m.params.StartBar())),
		field("end", formatBar(m.params.EndBar())),
		field("reset", onOff(m.params.ResetOnStop())),
	}, gap)

	right := ""
	if m.status != "" {
		if m.statusErr {
			right = st.Error.Inherit(st.StatusKey).Render(m.status)
		} else {
			right = st.StatusValue.Render(m.status)
		}
	}

	pad := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return st.Status.Width(m.width).Render(left + st.StatusKey.Render(strings.Repeat(" ", pad)) + right)
}

// formatBar formats a bar parameter with two decimals
func formatBar(v float32) string {
	return fmt.Sprintf("%.2f", v)
}

// renderHints renders the one-line key summary
func (m Model) renderHints() string {
	bindings := []struct{ key, desc string }{
		{Keys.PlayPause.Help().Key, "play"},
		{Keys.ToggleAuto.Help().Key, "auto"},
		{Keys.SetStart.Help().Key + Keys.SetEnd.Help().Key, "range"},
		{Keys.Search.Help().Key, "find"},
		{Keys.Edit.Help().Key, "edit"},
		{Keys.Help.Help().Key, "help"},
		{Keys.Quit.Help().Key, "quit"},
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, m.styles.Accent.Render(b.key)+" "+m.styles.Dim.Render(b.desc))
	}
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	titles := []string{"TRANSPORT", "SCROLL", "DISPLAY", "OTHER"}

	var columns []string
	for i, group := range helpGroups() {
		var b strings.Builder
		b.WriteString(m.styles.ModalTitle.Render(titles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "%s %s\n",
				m.styles.Accent.Render(fmt.Sprintf("%-7s", h.Key)),
				h.Desc)
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(b.String()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		m.styles.Dim.Render("Press any key to return..."),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Render(content))
}
