package transport

import (
	"github.com/go-audio/audio"
)

// Processor is the per-block audio callback. Audio passes through untouched;
// output channels with no matching input are silenced, then the transport is
// sampled.
type Processor struct {
	sampler       *Sampler
	inputChannels int
}

// NewProcessor creates a processor for a bus with inputChannels inputs.
func NewProcessor(sampler *Sampler, inputChannels int) *Processor {
	if inputChannels < 0 {
		inputChannels = 0
	}
	return &Processor{sampler: sampler, inputChannels: inputChannels}
}

// ProcessBlock handles one interleaved block in place.
func (p *Processor) ProcessBlock(buf *audio.Float32Buffer) {
	if buf != nil && buf.Format != nil {
		clearExtraChannels(buf.Data, buf.Format.NumChannels, p.inputChannels)
	}
	p.sampler.Sample()
}

func clearExtraChannels(data []float32, numChannels, inputChannels int) {
	if numChannels <= 0 || inputChannels >= numChannels {
		return
	}
	for frame := 0; frame+numChannels <= len(data); frame += numChannels {
		for ch := inputChannels; ch < numChannels; ch++ {
			data[frame+ch] = 0
		}
	}
}
