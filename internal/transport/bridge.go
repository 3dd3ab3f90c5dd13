// Package transport moves host playback position from the audio context to
// the UI context without locks.
package transport

import (
	"math"
	"sync/atomic"

	"github.com/mmcdole/prompter/internal/domain"
)

// Bridge holds the latest transport fields in independent atomic cells.
// The sampler is the only writer. Readers may see fields from adjacent
// publishes; each field is re-published every audio block.
type Bridge struct {
	bar     atomic.Uint64 // float64 bit pattern
	valid   atomic.Bool
	playing atomic.Bool
	stopped atomic.Bool
}

// NewBridge returns a bridge reporting an invalid, stopped transport.
func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) storeBar(bar float64) {
	b.bar.Store(math.Float64bits(bar))
}

func (b *Bridge) storeValid(valid bool) {
	b.valid.Store(valid)
}

func (b *Bridge) storePlaying(playing bool) {
	b.playing.Store(playing)
}

func (b *Bridge) markStopped() {
	b.stopped.Store(true)
}

// BarPosition returns the last published bar position.
// Only meaningful while Valid reports true.
func (b *Bridge) BarPosition() float64 {
	return math.Float64frombits(b.bar.Load())
}

// Valid reports whether the host supplied a usable position on the last block.
func (b *Bridge) Valid() bool {
	return b.valid.Load()
}

// IsPlaying reports the host play state from the last block.
func (b *Bridge) IsPlaying() bool {
	return b.playing.Load()
}

// Snapshot loads every field. Fields are loaded one at a time.
func (b *Bridge) Snapshot() domain.TransportSnapshot {
	return domain.TransportSnapshot{
		BarPosition: b.BarPosition(),
		Valid:       b.Valid(),
		IsPlaying:   b.IsPlaying(),
	}
}

// ConsumeStopped reports whether playback stopped since the last call and
// clears the flag. Concurrent callers never both observe the same stop.
func (b *Bridge) ConsumeStopped() bool {
	return b.stopped.Swap(false)
}
