package transport

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-audio/audio"
	"github.com/mmcdole/prompter/internal/domain"
)

type scriptedHead struct {
	info domain.PositionInfo
	ok   bool
}

func (h *scriptedHead) Position() (domain.PositionInfo, bool) {
	return h.info, h.ok
}

func TestSamplerPublishesBarPosition(t *testing.T) {
	tests := []struct {
		name      string
		numerator int
		ppq       float64
		want      float64
	}{
		{"four four", 4, 32, 8},
		{"three four", 3, 12, 4},
		{"zero numerator defaults to four", 0, 16, 4},
		{"negative numerator defaults to four", -7, 8, 2},
		{"song start", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head := &scriptedHead{ok: true, info: domain.PositionInfo{TimeSigNumerator: tt.numerator, PPQPosition: tt.ppq}}
			s := NewSampler(head, NewBridge())
			s.Sample()

			snap := s.Bridge().Snapshot()
			if !snap.Valid {
				t.Fatalf("expected valid snapshot")
			}
			if snap.BarPosition != tt.want {
				t.Fatalf("bar position = %v, want %v", snap.BarPosition, tt.want)
			}
		})
	}
}

func TestSamplerInvalidPreservesBar(t *testing.T) {
	head := &scriptedHead{ok: true, info: domain.PositionInfo{TimeSigNumerator: 4, PPQPosition: 40}}
	bridge := NewBridge()
	s := NewSampler(head, bridge)
	s.Sample()

	bad := []domain.PositionInfo{
		{TimeSigNumerator: 4, PPQPosition: -1},
		{TimeSigNumerator: 4, PPQPosition: math.NaN()},
		{TimeSigNumerator: 4, PPQPosition: math.Inf(1)},
	}
	for _, info := range bad {
		head.info = info
		s.Sample()
		if bridge.Valid() {
			t.Fatalf("ppq %v should publish invalid", info.PPQPosition)
		}
		if got := bridge.BarPosition(); got != 10 {
			t.Fatalf("bar position = %v, want preserved 10", got)
		}
	}

	head.ok = false
	s.Sample()
	if bridge.Valid() {
		t.Fatalf("missing host position should publish invalid")
	}
}

func TestSamplerNilHead(t *testing.T) {
	bridge := NewBridge()
	s := NewSampler(nil, bridge)
	s.Sample()
	if bridge.Valid() || bridge.IsPlaying() {
		t.Fatalf("nil play head must publish an invalid stopped transport")
	}
}

func TestStopEdgeExactlyOnce(t *testing.T) {
	head := &scriptedHead{ok: true, info: domain.PositionInfo{TimeSigNumerator: 4}}
	bridge := NewBridge()
	s := NewSampler(head, bridge)

	sequence := []bool{true, true, false, false, true, false, false}
	observed := 0
	for _, playing := range sequence {
		head.info.IsPlaying = playing
		s.Sample()
	}
	for bridge.ConsumeStopped() {
		observed++
	}
	if observed != 1 {
		t.Fatalf("flag is a single pending bit; got %d reads", observed)
	}

	// Consume between blocks: each stop edge is observed once.
	s = NewSampler(head, NewBridge())
	observed = 0
	for _, playing := range sequence {
		head.info.IsPlaying = playing
		s.Sample()
		if s.Bridge().ConsumeStopped() {
			observed++
		}
	}
	if observed != 2 {
		t.Fatalf("observed %d stop edges, want 2", observed)
	}
	if s.Bridge().ConsumeStopped() {
		t.Fatalf("second clear without a new stop must observe false")
	}
}

func TestStopEdgeIgnoresValidity(t *testing.T) {
	head := &scriptedHead{ok: true, info: domain.PositionInfo{IsPlaying: true, PPQPosition: 4}}
	s := NewSampler(head, NewBridge())
	s.Sample()

	// Host drops its position entirely; it is no longer reported as playing.
	head.ok = false
	s.Sample()
	if !s.Bridge().ConsumeStopped() {
		t.Fatalf("losing the play head while playing counts as a stop")
	}
}

func TestConsumeStoppedConcurrentReaders(t *testing.T) {
	for round := 0; round < 200; round++ {
		bridge := NewBridge()
		bridge.markStopped()

		var hits atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if bridge.ConsumeStopped() {
					hits.Add(1)
				}
			}()
		}
		wg.Wait()
		if hits.Load() != 1 {
			t.Fatalf("round %d: %d readers consumed one stop", round, hits.Load())
		}
	}
}

func TestBridgeConcurrentPublish(t *testing.T) {
	head := &scriptedHead{ok: true, info: domain.PositionInfo{IsPlaying: true, TimeSigNumerator: 4}}
	bridge := NewBridge()
	s := NewSampler(head, bridge)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			head.info.PPQPosition = float64(i)
			s.Sample()
		}
	}()

	last := -1.0
	for {
		select {
		case <-done:
			if got := bridge.BarPosition(); got != 9999.0/4 {
				t.Fatalf("final bar = %v", got)
			}
			return
		default:
			bar := bridge.BarPosition()
			if bar < last {
				t.Fatalf("bar went backwards: %v after %v", bar, last)
			}
			last = bar
		}
	}
}

func TestProcessorPassesAudioThrough(t *testing.T) {
	head := &scriptedHead{ok: true, info: domain.PositionInfo{TimeSigNumerator: 4, PPQPosition: 8}}
	bridge := NewBridge()
	p := NewProcessor(NewSampler(head, bridge), 2)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: 3, SampleRate: 48000},
		Data:   []float32{0.1, 0.2, 0.9, 0.3, 0.4, 0.9},
	}
	p.ProcessBlock(buf)

	want := []float32{0.1, 0.2, 0, 0.3, 0.4, 0}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, buf.Data[i], want[i])
		}
	}
	if !bridge.Valid() || bridge.BarPosition() != 2 {
		t.Fatalf("processor must sample the transport every block")
	}
}

func TestProcessorNilBuffer(t *testing.T) {
	bridge := NewBridge()
	p := NewProcessor(NewSampler(&scriptedHead{ok: true}, bridge), 2)
	p.ProcessBlock(nil)
	if !bridge.Valid() {
		t.Fatalf("transport is sampled even without audio")
	}
}
