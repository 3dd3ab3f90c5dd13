package tui

import (
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/prompter/internal/adapter"
)

// statusTimeout is how long transient status messages stay visible
const statusTimeout = 3 * time.Second

// TransportTickCmd schedules the next transport sync
func TransportTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TransportTickMsg{}
	})
}

// FrameTickCmd schedules the next scroll frame
func FrameTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FrameTickMsg{}
	})
}

// ClearStatusCmd clears status message seq after the timeout
func ClearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// EditorLauncher builds the command for an external editor
type EditorLauncher interface {
	Command(path string) (*exec.Cmd, error)
}

// EditExternalCmd writes text to a draft and hands the terminal to an
// external editor. The draft path comes back in EditorFinishedMsg.
func EditExternalCmd(launcher EditorLauncher, text string) tea.Cmd {
	path, err := adapter.WriteDraft(text)
	if err != nil {
		return func() tea.Msg { return ErrMsg{Err: err, Context: "edit"} }
	}

	cmd, err := launcher.Command(path)
	if err != nil {
		return func() tea.Msg { return EditorFinishedMsg{Path: path, Err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorFinishedMsg{Path: path, Err: err}
	})
}
