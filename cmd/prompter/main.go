package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/prompter/internal/adapter"
	"github.com/mmcdole/prompter/internal/domain"
	"github.com/mmcdole/prompter/internal/engine"
	"github.com/mmcdole/prompter/internal/host"
	"github.com/mmcdole/prompter/internal/params"
	"github.com/mmcdole/prompter/internal/scroll"
	"github.com/mmcdole/prompter/internal/search"
	"github.com/mmcdole/prompter/internal/service"
	"github.com/mmcdole/prompter/internal/store"
	"github.com/mmcdole/prompter/internal/transport"
	"github.com/mmcdole/prompter/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// flags holds command line options
type flags struct {
	showVersion bool
	initConfig  bool
	importPath  string
	session     string
	listOnly    bool
	deleteName  string
	headless    bool
	duration    time.Duration
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.BoolVar(&f.initConfig, "init", false, "write the default config file and exit")
	flag.StringVar(&f.importPath, "import", "", "load lyrics from a text file")
	flag.StringVar(&f.session, "session", "", "session name (default: last saved, then store.session)")
	flag.BoolVar(&f.listOnly, "list", false, "list saved sessions and exit")
	flag.StringVar(&f.deleteName, "delete", "", "delete a saved session and exit")
	flag.BoolVar(&f.headless, "headless", false, "run without a UI, logging line changes to stderr")
	flag.DurationVar(&f.duration, "duration", 0, "headless run time (0 = until interrupted)")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("prompter %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	if f.initConfig {
		if err := adapter.SaveConfig(adapter.DefaultConfig()); err != nil {
			return err
		}
		fmt.Println("wrote default config")
		return nil
	}

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Headless also covers output that is not a terminal
	headless := f.headless || !term.IsTerminal(int(os.Stdout.Fd()))

	// Setup logger
	var logger *slog.Logger
	if headless {
		logger = adapter.NewLogger(os.Stderr, cfg.Logging.Level)
	} else {
		logger, err = adapter.SetupLogger(&cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = adapter.NullLogger()
		}
	}
	slog.SetDefault(logger)

	sessions, err := openStore(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer sessions.Close()

	switch {
	case f.listOnly:
		return printSessions(sessions)
	case f.deleteName != "":
		if err := service.DeleteSession(sessions, f.deleteName); err != nil {
			return err
		}
		fmt.Printf("deleted session %q\n", f.deleteName)
		return nil
	}

	cfg.Store.Session = service.ResolveSessionName(sessions, f.session, cfg.Store.Session)
	logger.Info("starting prompter", "version", Version, "session", cfg.Store.Session, "headless", headless)

	// Restore the session, then apply an import on top
	p := params.NewStore()
	session := service.NewSessionService(sessions, p, cfg.Store.Session, logger)
	text, _, err := session.Load()
	if err != nil {
		return err
	}
	if f.importPath != "" {
		text, err = adapter.ImportLyrics(f.importPath)
		if err != nil {
			return err
		}
		logger.Info("imported lyrics", "path", f.importPath, "lines", scroll.CountLines(text))
	}

	// Audio side: host → processor → sampler → bridge
	h := host.New(hostConfig(cfg.Host), logger)
	bridge := transport.NewBridge()
	sampler := transport.NewSampler(h, bridge)
	processor := transport.NewProcessor(sampler, cfg.Host.InputChannels)

	// UI side
	ctrl := engine.NewController(bridge, p, scroll.Layout{}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostDone := make(chan error, 1)
	go func() {
		hostDone <- h.Run(ctx, processor)
	}()

	if headless {
		err = runHeadless(ctx, f.duration, h, ctrl, p, text, cfg, logger)
		if err == nil {
			// Keeps an --import for the next run
			_, err = session.SaveIfDirty(text)
		}
	} else {
		err = runTUI(ctx, h, ctrl, p, session, text, cfg, logger)
	}

	stop()
	if herr := <-hostDone; herr != nil && !errors.Is(herr, context.Canceled) {
		logger.Error("host stopped", "error", herr)
	}

	logger.Info("shutting down")
	return err
}

// openStore opens the session store, falling back to memory only
func openStore(path string, logger *slog.Logger) (*store.SessionStore, error) {
	dir, err := adapter.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	sessions, err := store.NewSessionStore(dir)
	if err == nil {
		return sessions, nil
	}

	logger.Warn("session store unavailable, changes will not persist", "path", dir, "error", err)
	return store.NewSessionStore("")
}

// printSessions writes saved sessions to stdout, newest marked with *
func printSessions(c service.SessionCatalog) error {
	infos, err := service.ListSessions(c)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no saved sessions")
		return nil
	}
	for _, info := range infos {
		mark := " "
		if info.Last {
			mark = "*"
		}
		fmt.Printf("%s %-24s %s\n", mark, info.Name, info.SavedAt.Local().Format(time.DateTime))
	}
	return nil
}

func hostConfig(c adapter.HostConfig) host.Config {
	return host.Config{
		SampleRate:       c.SampleRate,
		BlockSize:        c.BlockSize,
		InputChannels:    c.InputChannels,
		OutputChannels:   c.OutputChannels,
		Tempo:            c.Tempo,
		TimeSigNumerator: c.TimeSignature,
	}
}

func runTUI(ctx context.Context, h *host.Host, ctrl *engine.Controller, p *params.Store,
	session *service.SessionService, text string, cfg *adapter.Config, logger *slog.Logger) error {

	model := tui.NewModel(tui.Options{
		Controller:        ctrl,
		Params:            p,
		Transport:         h,
		Session:           session,
		Search:            search.NewService(text, logger),
		Editor:            adapter.NewEditor(cfg.UI.Editor, logger),
		Text:              text,
		Theme:             cfg.UI.Theme,
		TransportInterval: time.Second / time.Duration(cfg.UI.TransportHz),
		FrameInterval:     time.Second / time.Duration(cfg.UI.FrameHz),
		ManualStep:        float32(cfg.UI.ManualStep),
		Logger:            logger,
	})

	// Run the TUI
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI")

	final, err := prog.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	// Quit saves; an interrupt still needs the latest text written
	if m, ok := final.(tui.Model); ok {
		if _, err := session.SaveIfDirty(m.Text()); err != nil {
			logger.Error("save session", "error", err)
		}
	}
	return nil
}

// runHeadless plays the transport and logs active line changes
func runHeadless(ctx context.Context, d time.Duration, h *host.Host, ctrl *engine.Controller,
	p *params.Store, text string, cfg *adapter.Config, logger *slog.Logger) error {

	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	// Headless has no viewport; one line per screen keeps offsets meaningful
	lh, _ := scroll.MetricsForFontSize(p.FontSize())
	ctrl.SetLayout(scroll.NewLayout(text, p.FontSize(), lh))

	for _, spec := range params.Specs() {
		v, _ := p.Get(spec.ID)
		logger.Info("param", "name", spec.Name, "value", v)
	}

	h.Play()
	logger.Info("headless playback", "lines", scroll.CountLines(text), "tempo", cfg.Host.Tempo)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.UI.TransportHz))
	defer ticker.Stop()

	valid := true
	for {
		select {
		case <-ctx.Done():
			logger.Info("headless run finished", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			res := ctrl.Tick()
			if res.LineMoved {
				logger.Info("active line", "line", res.ActiveLine, "bar", res.Transport.BarPosition)
			}
			if res.Reset {
				logger.Info("stop reset")
			}
			if res.Transport.Valid != valid {
				valid = res.Transport.Valid
				if !valid {
					logger.Warn("lost transport position", "error", domain.ErrTransportInvalid)
				}
			}
		}
	}
}
