package tui

import (
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/prompter/internal/adapter"
	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/engine"
	"github.com/mmcdole/prompter/internal/params"
	"github.com/mmcdole/prompter/internal/scroll"
	"github.com/mmcdole/prompter/internal/search"
	"github.com/mmcdole/prompter/internal/service"
	"github.com/mmcdole/prompter/internal/store"
	"github.com/mmcdole/prompter/internal/transport"
)

type fakeHead struct {
	info domain.PositionInfo
	ok   bool
}

func (h *fakeHead) Position() (domain.PositionInfo, bool) { return h.info, h.ok }

type fakeTransport struct {
	toggles, stops, rewinds int
}

func (f *fakeTransport) Toggle() bool { f.toggles++; return true }
func (f *fakeTransport) Stop() bool   { f.stops++; return true }
func (f *fakeTransport) Rewind() bool { f.rewinds++; return true }

type harness struct {
	head      *fakeHead
	sampler   *transport.Sampler
	params    *params.Store
	transport *fakeTransport
	store     *store.SessionStore
	session   *service.SessionService
	model     Model
}

func lyricSheet() string {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	lines[12] = "the chorus"
	return strings.Join(lines, "\n")
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := store.NewSessionStore("")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	text := lyricSheet()
	head := &fakeHead{info: domain.PositionInfo{TimeSigNumerator: 4}}
	bridge := transport.NewBridge()
	p := params.NewStore()
	session := service.NewSessionService(st, p, "test", nil)
	ft := &fakeTransport{}

	m := NewModel(Options{
		Controller: engine.NewController(bridge, p, scroll.Layout{}, nil),
		Params:     p,
		Transport:  ft,
		Session:    session,
		Search:     search.NewService(text, nil),
		Text:       text,
		Theme:      "dark",
	})

	h := &harness{
		head:      head,
		sampler:   transport.NewSampler(head, bridge),
		params:    p,
		transport: ft,
		store:     st,
		session:   session,
		model:     m,
	}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 12})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys string) {
	for _, r := range keys {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// block publishes one audio block at bar
func (h *harness) block(bar float64, playing bool) {
	h.head.ok = true
	h.head.info.PPQPosition = bar * 4
	h.head.info.IsPlaying = playing
	h.sampler.Sample()
}

func TestResizeSetsLayout(t *testing.T) {
	h := newHarness(t)

	layout := h.model.ctrl.Layout()
	if layout.ViewportHeight != 10*UnitsPerRow {
		t.Fatalf("viewport = %d, want %d", layout.ViewportHeight, 10*UnitsPerRow)
	}
	if layout.NumLines != 20 || layout.LineHeight != 33 || layout.Padding != 15 {
		t.Fatalf("layout = %+v", layout)
	}
}

func TestTransportTickFollowsPlayback(t *testing.T) {
	h := newHarness(t)
	h.block(32, true) // halfway through 0..64

	if cmd := h.send(TransportTickMsg{}); cmd == nil {
		t.Fatal("transport tick must reschedule itself")
	}
	if got := h.model.ctrl.ActiveLine(); got != 9 {
		t.Fatalf("active line = %d, want 9", got)
	}

	for i := 0; i < 100; i++ {
		if cmd := h.send(FrameTickMsg{}); cmd == nil {
			t.Fatal("frame tick must reschedule itself")
		}
	}
	state := h.model.ctrl.Scroll()
	if !state.Converged() || state.Current == 0 {
		t.Fatalf("scroll = %+v, want converged past top", state)
	}
}

func TestTransportKeys(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeySpace})
	h.press("s0")

	ft := h.transport
	if ft.toggles != 1 || ft.stops != 1 || ft.rewinds != 1 {
		t.Fatalf("transport calls = %+v", *ft)
	}
}

func TestToggleKeysPersist(t *testing.T) {
	h := newHarness(t)

	h.press("a")
	if h.params.AutoScroll() {
		t.Fatal("auto scroll should be off")
	}
	h.press("r")
	if !h.params.ResetOnStop() {
		t.Fatal("reset on stop should be on")
	}

	state, err := h.store.Load("test")
	if err != nil {
		t.Fatalf("session not saved: %v", err)
	}
	if state.Params.AutoScroll || !state.Params.ResetOnStop {
		t.Fatalf("saved params = %+v", state.Params)
	}
}

func TestSetRangeFromTransport(t *testing.T) {
	h := newHarness(t)

	// no position yet
	h.press("[")
	if h.params.StartBar() != 0 || !h.model.statusErr {
		t.Fatalf("start = %v statusErr = %v", h.params.StartBar(), h.model.statusErr)
	}

	h.block(8, true)
	h.press("[")
	h.block(40.5, true)
	h.press("]")

	if h.params.StartBar() != 8 || h.params.EndBar() != 40.5 {
		t.Fatalf("range = %v..%v", h.params.StartBar(), h.params.EndBar())
	}
	if !strings.Contains(h.model.renderStatus(), "40.50") {
		t.Fatalf("status bar missing end bar: %q", h.model.renderStatus())
	}
}

func TestFontKeysRelayout(t *testing.T) {
	h := newHarness(t)

	h.press("+")
	if h.params.FontSize() != 25 {
		t.Fatalf("font = %v", h.params.FontSize())
	}
	lh, _ := scroll.MetricsForFontSize(25)
	if got := h.model.ctrl.Layout().LineHeight; got != lh {
		t.Fatalf("line height = %d, want %d", got, lh)
	}

	for i := 0; i < 100; i++ {
		h.press("-")
	}
	if h.params.FontSize() != scroll.MinFontSize {
		t.Fatalf("font = %v, want clamp at %d", h.params.FontSize(), scroll.MinFontSize)
	}
}

func TestManualScrollKeys(t *testing.T) {
	h := newHarness(t)

	h.press("jj")
	if h.params.AutoScroll() {
		t.Fatal("scrolling by hand should switch to manual")
	}
	if got := h.params.ManualScroll(); got < 0.099 || got > 0.101 {
		t.Fatalf("manual = %v, want 0.1", got)
	}
	h.press("kkkk")
	if got := h.params.ManualScroll(); got != 0 {
		t.Fatalf("manual = %v, want clamp at 0", got)
	}
}

func TestSearchJumpsToLine(t *testing.T) {
	h := newHarness(t)

	h.press("/")
	if !h.model.searchModal.IsVisible() {
		t.Fatal("search modal should open")
	}
	h.press("chorus")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.model.searchModal.IsVisible() {
		t.Fatal("search modal should close after a pick")
	}
	if h.model.ctrl.ActiveLine() != 12 {
		t.Fatalf("active line = %d, want 12", h.model.ctrl.ActiveLine())
	}
	if h.params.AutoScroll() || h.params.ManualScroll() <= 0 {
		t.Fatalf("auto = %v manual = %v", h.params.AutoScroll(), h.params.ManualScroll())
	}
}

func TestSearchKeysDoNotLeak(t *testing.T) {
	h := newHarness(t)

	h.press("/")
	h.press("a") // typed into the prompt, not a toggle
	if !h.params.AutoScroll() {
		t.Fatal("key leaked out of the search prompt")
	}
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.searchModal.IsVisible() {
		t.Fatal("esc should close the search modal")
	}
}

func TestInlineEditCommits(t *testing.T) {
	h := newHarness(t)

	h.press("e")
	if !h.model.lyricEditor.IsVisible() {
		t.Fatal("editor should open")
	}
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.press("outro")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	if h.model.lyricEditor.IsVisible() {
		t.Fatal("editor should close on save")
	}
	if !strings.HasSuffix(h.model.Text(), "\noutro") {
		t.Fatalf("text = %q", h.model.Text())
	}
	if got := h.model.ctrl.Layout().NumLines; got != 21 {
		t.Fatalf("num lines = %d, want 21", got)
	}

	state, err := h.store.Load("test")
	if err != nil || state.Text != h.model.Text() {
		t.Fatalf("saved text = %q, %v", state.Text, err)
	}
}

func TestInlineEditDiscard(t *testing.T) {
	h := newHarness(t)
	before := h.model.Text()

	h.press("e")
	h.press("zzz")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	if h.model.Text() != before {
		t.Fatal("discarded edit changed the text")
	}
}

func TestQuitSaves(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit should return tea.Quit")
	}
	if _, err := h.store.Load("test"); err != nil {
		t.Fatalf("session not saved on quit: %v", err)
	}
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t)

	h.press("t")
	if h.model.styles.Theme.Name != "light" {
		t.Fatalf("theme = %q", h.model.styles.Theme.Name)
	}
	h.press("t")
	if h.model.styles.Theme.Name != "dark" {
		t.Fatalf("theme = %q", h.model.styles.Theme.Name)
	}
}

func TestStatusClearsBySequence(t *testing.T) {
	h := newHarness(t)

	h.press("a")
	first := h.model.statusSeq
	h.press("a")

	h.send(ClearStatusMsg{Seq: first})
	if h.model.status == "" {
		t.Fatal("stale clear removed a newer status")
	}
	h.send(ClearStatusMsg{Seq: h.model.statusSeq})
	if h.model.status != "" {
		t.Fatalf("status = %q", h.model.status)
	}
}

func TestViewRendersActiveLine(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	if !strings.Contains(view, "line 0") {
		t.Fatalf("first line not visible:\n%s", view)
	}
	if !strings.Contains(view, "STOPPED") && !strings.Contains(view, "NO SYNC") {
		t.Fatalf("status bar missing play state:\n%s", view)
	}
}

func TestExternalEditUnchangedKeepsLineCount(t *testing.T) {
	h := newHarness(t)
	before := h.model.Text()

	for i := 0; i < 3; i++ {
		path, err := adapter.WriteDraft(h.model.Text())
		if err != nil {
			t.Fatalf("WriteDraft: %v", err)
		}
		// editors end the file with a newline on save
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			t.Fatal(err)
		}
		f.WriteString("\n")
		f.Close()

		h.send(EditorFinishedMsg{Path: path})
	}

	if h.model.Text() != before {
		t.Fatalf("text changed: %q", h.model.Text())
	}
	if got := h.model.ctrl.Layout().NumLines; got != 20 {
		t.Fatalf("num lines = %d, want 20", got)
	}
}
