package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/prompter/internal/adapter"
	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/engine"
	"github.com/mmcdole/prompter/internal/params"
	"github.com/mmcdole/prompter/internal/scroll"
	"github.com/mmcdole/prompter/internal/search"
	"github.com/mmcdole/prompter/internal/service"
	"github.com/mmcdole/prompter/internal/tui/components"
	"github.com/mmcdole/prompter/internal/tui/styles"
)

const (
	fontStep         = 1
	searchLimit      = 50
	chromeRows       = 2 // status bar and key hints
	defaultTransport = time.Second / 30
	defaultFrame     = time.Second / 60
)

// TransportControls is the subset of the host transport the UI drives
type TransportControls interface {
	Toggle() bool
	Stop() bool
	Rewind() bool
}

// Options wires the model to the rest of the application
type Options struct {
	Controller *engine.Controller
	Params     *params.Store
	Transport  TransportControls
	Session    *service.SessionService
	Search     *search.Service
	Editor     EditorLauncher

	Text              string
	Theme             string
	TransportInterval time.Duration
	FrameInterval     time.Duration
	ManualStep        float32
	Logger            *slog.Logger
}

// Model is the main bubbletea model
type Model struct {
	ctrl      *engine.Controller
	params    *params.Store
	transport TransportControls
	session   *service.SessionService
	search    *search.Service
	editor    EditorLauncher
	logger    *slog.Logger

	text  string
	lines []string

	styles      styles.Styles
	searchModal components.SearchModal
	lyricEditor components.LyricEditor

	width  int
	height int

	transportInterval time.Duration
	frameInterval     time.Duration
	manualStep        float32

	showHelp  bool
	status    string
	statusErr bool
	statusSeq int
}

// NewModel creates the prompter model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transportInterval := opts.TransportInterval
	if transportInterval <= 0 {
		transportInterval = defaultTransport
	}
	frameInterval := opts.FrameInterval
	if frameInterval <= 0 {
		frameInterval = defaultFrame
	}
	manualStep := opts.ManualStep
	if manualStep <= 0 {
		manualStep = 0.05
	}

	st := styles.New(styles.ThemeByName(opts.Theme))
	m := Model{
		ctrl:              opts.Controller,
		params:            opts.Params,
		transport:         opts.Transport,
		session:           opts.Session,
		search:            opts.Search,
		editor:            opts.Editor,
		logger:            logger,
		styles:            st,
		searchModal:       components.NewSearchModal(st),
		lyricEditor:       components.NewLyricEditor(st),
		transportInterval: transportInterval,
		frameInterval:     frameInterval,
		manualStep:        manualStep,
	}
	m.setText(opts.Text)
	return m
}

// Init starts both clocks
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TransportTickCmd(m.transportInterval),
		FrameTickCmd(m.frameInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchModal.SetSize(msg.Width, msg.Height)
		m.lyricEditor.SetSize(msg.Width, msg.Height)
		m.relayout()
		return m, nil

	case TransportTickMsg:
		res := m.ctrl.Sync()
		if res.LineMoved {
			m.logger.Debug("active line", "line", res.ActiveLine, "bar", res.Transport.BarPosition)
		}
		return m, TransportTickCmd(m.transportInterval)

	case FrameTickMsg:
		m.ctrl.Advance()
		return m, FrameTickCmd(m.frameInterval)

	case EditorFinishedMsg:
		return m.handleEditorFinished(msg)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case ErrMsg:
		m.logger.Error("ui error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Forward everything else (cursor blink) to the open component
	var cmd tea.Cmd
	switch {
	case m.lyricEditor.IsVisible():
		m.lyricEditor, cmd, _ = m.lyricEditor.Update(msg)
	case m.searchModal.IsVisible():
		m.searchModal, cmd, _ = m.searchModal.Update(msg)
	}
	return m, cmd
}

func (m Model) handleEditorFinished(msg EditorFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// The draft is left unread; clean it up
		if msg.Path != "" {
			adapter.ReadDraft(msg.Path)
		}
		m.logger.Error("external editor failed", "error", msg.Err)
		return m, m.setStatus("editor: "+msg.Err.Error(), true)
	}

	text, err := adapter.ReadDraft(msg.Path)
	if err != nil {
		m.logger.Error("read draft", "error", err)
		return m, m.setStatus(err.Error(), true)
	}
	return m, m.commitText(text)
}

// commitText installs edited lyrics and persists them
func (m *Model) commitText(text string) tea.Cmd {
	if text == m.text {
		return nil
	}
	m.setText(text)
	if m.search != nil {
		m.search.Reindex(text)
	}
	m.save()
	return m.setStatus(fmt.Sprintf("%d lines", len(m.lines)), false)
}

func (m *Model) setText(text string) {
	m.text = text
	m.lines = splitLines(text)
	m.relayout()
}

// relayout recomputes scroll metrics after a text, font, or size change
func (m *Model) relayout() {
	if m.ctrl == nil {
		return
	}
	m.ctrl.SetLayout(scroll.NewLayout(m.text, m.params.FontSize(), m.sheetRows()*UnitsPerRow))
}

func (m Model) sheetRows() int {
	return max(0, m.height-chromeRows)
}

func (m *Model) nudge(delta float32) {
	if m.params.AutoScroll() {
		m.params.SetBool(domain.ParamAutoScroll, false)
	}
	m.ctrl.NudgeManual(delta)
	m.save()
}

func (m *Model) stepFont(delta float32) tea.Cmd {
	size, _ := m.params.Set(domain.ParamFontSize, m.params.FontSize()+delta)
	m.relayout()
	m.save()
	return m.setStatus(fmt.Sprintf("font %.1f", size), false)
}

func (m *Model) setBar(set func() bool, name string, get func() float32) tea.Cmd {
	if !set() {
		return m.setStatus("transport position unavailable", true)
	}
	m.save()
	return m.setStatus(fmt.Sprintf("%s bar %.2f", name, get()), false)
}

func (m *Model) applyTheme(t styles.Theme) {
	m.styles = styles.New(t)
	m.searchModal.SetStyles(m.styles)
	m.lyricEditor.SetStyles(m.styles)
}

// save persists the session when params or text changed since the last save
func (m *Model) save() {
	if m.session == nil {
		return
	}
	saved, err := m.session.SaveIfDirty(m.text)
	if err != nil {
		m.logger.Error("save session", "session", m.session.Name(), "error", err)
		m.status = "save failed: " + err.Error()
		m.statusErr = true
		return
	}
	if saved {
		m.logger.Debug("session saved", "session", m.session.Name())
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return ClearStatusCmd(m.statusSeq)
}

// Text returns the current lyric sheet
func (m Model) Text() string {
	return m.text
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
