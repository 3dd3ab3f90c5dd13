package tui

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TransportTickMsg drives the transport sync step
type TransportTickMsg struct{}

// FrameTickMsg drives the scroll ease step
type FrameTickMsg struct{}

// EditorFinishedMsg signals that the external editor exited
type EditorFinishedMsg struct {
	Path string
	Err  error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
