package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Editor resolves an external text editor for lyric editing
type Editor struct {
	command string   // configured editor command, empty for auto-detect
	args    []string // additional arguments for the editor
	logger  *slog.Logger
	lookup  func(string) (string, error)
	getenv  func(string) string
}

// candidateEditors defines the preferred editor order for each platform
var candidateEditors = map[string][]string{
	"darwin":  {"nvim", "vim", "nano", "vi"},
	"linux":   {"nvim", "vim", "nano", "vi"},
	"windows": {"notepad"},
}

// NewEditor creates an Editor. command may include arguments ("code --wait").
func NewEditor(command string, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(command)
	e := &Editor{
		logger: logger,
		lookup: exec.LookPath,
		getenv: os.Getenv,
	}
	if len(fields) > 0 {
		e.command = fields[0]
		e.args = fields[1:]
	}
	return e
}

// resolve picks the editor command and its arguments
func (e *Editor) resolve() (string, []string, error) {
	// Tier 1: configured editor
	if e.command != "" {
		return e.command, e.args, nil
	}

	// Tier 2: VISUAL / EDITOR
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(e.getenv(env)); len(fields) > 0 {
			e.logger.Debug("using editor from environment", "var", env, "command", fields[0])
			return fields[0], fields[1:], nil
		}
	}

	// Tier 3: candidate chain for this platform
	candidates, ok := candidateEditors[runtime.GOOS]
	if !ok {
		candidates = candidateEditors["linux"] // default
	}
	for _, name := range candidates {
		if _, err := e.lookup(name); err == nil {
			e.logger.Debug("detected editor", "command", name)
			return name, nil, nil
		}
	}

	return "", nil, fmt.Errorf("no editor found, set ui.editor or $EDITOR")
}

// Command returns the command that edits path. The caller runs it with the
// terminal attached.
func (e *Editor) Command(path string) (*exec.Cmd, error) {
	name, args, err := e.resolve()
	if err != nil {
		return nil, err
	}

	cmdArgs := append(append([]string{}, args...), path)
	e.logger.Info("launching editor", "command", name, "args", cmdArgs)
	return exec.Command(name, cmdArgs...), nil
}

// WriteDraft writes text to a new temp file for editing
func WriteDraft(text string) (string, error) {
	f, err := os.CreateTemp("", "prompter-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft reads an edited draft back and removes it. The text is decoded
// like an import, so the final newline editors append does not add a line.
func ReadDraft(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return DecodeLyrics(data)
}
