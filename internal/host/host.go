// Package host simulates a DAW transport. It owns the audio goroutine, paces
// blocks in real time, and answers play head queries for the plugin.
package host

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-audio/audio"
	"github.com/mmcdole/prompter/internal/domain"
)

// BlockProcessor is the plugin side of the audio callback.
type BlockProcessor interface {
	ProcessBlock(buf *audio.Float32Buffer)
}

// Config describes the simulated session.
type Config struct {
	SampleRate       int
	BlockSize        int
	InputChannels    int
	OutputChannels   int
	Tempo            float64 // quarter notes per minute
	TimeSigNumerator int
}

// DefaultConfig is a 48 kHz, 512-frame, 120 BPM 4/4 session.
func DefaultConfig() Config {
	return Config{
		SampleRate:       48000,
		BlockSize:        512,
		InputChannels:    2,
		OutputChannels:   2,
		Tempo:            120,
		TimeSigNumerator: 4,
	}
}

type commandKind int

const (
	cmdPlay commandKind = iota
	cmdStop
	cmdToggle
	cmdSeek
	cmdTempo
	cmdTimeSig
	cmdAvailable
)

type command struct {
	kind  commandKind
	value float64
	flag  bool
}

const commandQueueSize = 32

// Host is a simulated transport. Control methods may be called from any
// goroutine; they enqueue commands that the audio goroutine applies at the
// start of the next block. Position is answered on the audio goroutine only.
type Host struct {
	cfg    Config
	cmds   chan command
	logger *slog.Logger
	buf    *audio.Float32Buffer

	// audio goroutine only
	playing   bool
	ppq       float64
	tempo     float64
	numerator int
	available bool
}

// New creates a stopped host at the song start.
func New(cfg Config, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = def.BlockSize
	}
	if cfg.OutputChannels <= 0 {
		cfg.OutputChannels = def.OutputChannels
	}
	if cfg.Tempo <= 0 {
		cfg.Tempo = def.Tempo
	}
	return &Host{
		cfg:       cfg,
		cmds:      make(chan command, commandQueueSize),
		logger:    logger,
		tempo:     cfg.Tempo,
		numerator: cfg.TimeSigNumerator,
		available: true,
		buf: &audio.Float32Buffer{
			Format: &audio.Format{NumChannels: cfg.OutputChannels, SampleRate: cfg.SampleRate},
			Data:   make([]float32, cfg.BlockSize*cfg.OutputChannels),
		},
	}
}

// Config returns the session configuration.
func (h *Host) Config() Config {
	return h.cfg
}

// BlockDuration is the wall-clock length of one block.
func (h *Host) BlockDuration() time.Duration {
	return time.Duration(float64(h.cfg.BlockSize) / float64(h.cfg.SampleRate) * float64(time.Second))
}

// Position implements domain.PlayHead.
func (h *Host) Position() (domain.PositionInfo, bool) {
	if !h.available {
		return domain.PositionInfo{}, false
	}
	return domain.PositionInfo{
		IsPlaying:        h.playing,
		TimeSigNumerator: h.numerator,
		PPQPosition:      h.ppq,
	}, true
}

// Run drives blocks through p until ctx is cancelled.
func (h *Host) Run(ctx context.Context, p BlockProcessor) error {
	ticker := time.NewTicker(h.BlockDuration())
	defer ticker.Stop()

	h.logger.Info("host transport running",
		"sample_rate", h.cfg.SampleRate,
		"block_size", h.cfg.BlockSize,
		"tempo", h.tempo)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("host transport stopped")
			return ctx.Err()
		case <-ticker.C:
			h.ProcessNext(p)
		}
	}
}

// ProcessNext applies pending commands, runs one block, and advances the
// play position. It must not be called concurrently with Run.
func (h *Host) ProcessNext(p BlockProcessor) {
	h.drain()
	clear(h.buf.Data)
	if p != nil {
		p.ProcessBlock(h.buf)
	}
	if h.playing {
		seconds := float64(h.cfg.BlockSize) / float64(h.cfg.SampleRate)
		h.ppq += h.tempo / 60 * seconds
	}
}

func (h *Host) drain() {
	for {
		select {
		case c := <-h.cmds:
			h.apply(c)
		default:
			return
		}
	}
}

func (h *Host) apply(c command) {
	switch c.kind {
	case cmdPlay:
		h.playing = true
	case cmdStop:
		h.playing = false
	case cmdToggle:
		h.playing = !h.playing
	case cmdSeek:
		numerator := h.numerator
		if numerator <= 0 {
			numerator = 4
		}
		h.ppq = max(0, c.value*float64(numerator))
	case cmdTempo:
		if c.value > 0 {
			h.tempo = c.value
		}
	case cmdTimeSig:
		h.numerator = int(c.value)
	case cmdAvailable:
		h.available = c.flag
	}
}

func (h *Host) send(c command) bool {
	select {
	case h.cmds <- c:
		return true
	default:
		h.logger.Warn("host command queue full, dropping command", "kind", c.kind)
		return false
	}
}

// Play starts the transport.
func (h *Host) Play() bool { return h.send(command{kind: cmdPlay}) }

// Stop halts the transport in place.
func (h *Host) Stop() bool { return h.send(command{kind: cmdStop}) }

// Toggle flips between playing and stopped.
func (h *Host) Toggle() bool { return h.send(command{kind: cmdToggle}) }

// Seek moves the play position to bar.
func (h *Host) Seek(bar float64) bool { return h.send(command{kind: cmdSeek, value: bar}) }

// Rewind moves the play position to the song start.
func (h *Host) Rewind() bool { return h.Seek(0) }

// SetTempo changes the tempo in quarter notes per minute.
func (h *Host) SetTempo(bpm float64) bool { return h.send(command{kind: cmdTempo, value: bpm}) }

// SetTimeSignature changes beats per bar. Non-positive values are passed to
// the plugin as-is, like a host that does not know its meter.
func (h *Host) SetTimeSignature(numerator int) bool {
	return h.send(command{kind: cmdTimeSig, value: float64(numerator)})
}

// SetPositionAvailable makes the play head report no position, as a host
// does while offline-bouncing or before a project is loaded.
func (h *Host) SetPositionAvailable(ok bool) bool {
	return h.send(command{kind: cmdAvailable, flag: ok})
}
