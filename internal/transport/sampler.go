package transport

import (
	"math"

	"github.com/mmcdole/prompter/internal/domain"
)

// DefaultNumerator is used when the host reports no usable time signature.
const DefaultNumerator = 4

// Sampler reads the host play head once per audio block and publishes the
// result to a Bridge. Sample runs on the audio context: it never blocks,
// allocates, or takes a lock.
type Sampler struct {
	head   domain.PlayHead
	bridge *Bridge

	// audio context only
	wasPlaying bool
}

// NewSampler creates a sampler. A nil head always publishes an invalid position.
func NewSampler(head domain.PlayHead, bridge *Bridge) *Sampler {
	return &Sampler{head: head, bridge: bridge}
}

// Bridge returns the bridge this sampler publishes to.
func (s *Sampler) Bridge() *Bridge {
	return s.bridge
}

// Sample queries the play head and publishes one snapshot.
func (s *Sampler) Sample() {
	gotInfo := false
	playingNow := false

	if s.head != nil {
		if info, ok := s.head.Position(); ok {
			playingNow = info.IsPlaying

			numerator := info.TimeSigNumerator
			if numerator <= 0 {
				numerator = DefaultNumerator
			}

			ppq := info.PPQPosition
			if ppq >= 0 && !math.IsInf(ppq, 0) {
				s.bridge.storeBar(ppq / float64(numerator))
				gotInfo = true
			}
		}
	}

	s.bridge.storeValid(gotInfo)
	s.bridge.storePlaying(playingNow)

	if s.wasPlaying && !playingNow {
		s.bridge.markStopped()
	}
	s.wasPlaying = playingNow
}
