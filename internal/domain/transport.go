package domain

// PositionInfo is what a host reports about its playback transport.
type PositionInfo struct {
	IsPlaying        bool
	TimeSigNumerator int     // beats per bar; hosts may report 0 when unknown
	PPQPosition      float64 // position in quarter notes from the song start
}

// PlayHead is queried from the audio context once per block.
// Implementations must not block; ok is false when the host has no position.
type PlayHead interface {
	Position() (info PositionInfo, ok bool)
}

// TransportSnapshot is the latest transport state published by the sampler.
// BarPosition is meaningless while Valid is false.
type TransportSnapshot struct {
	BarPosition float64
	Valid       bool
	IsPlaying   bool
}

// RangeConfig maps the lyric sheet onto a span of bars.
// End <= Start is allowed and pins progress to the first line.
type RangeConfig struct {
	StartBar float32
	EndBar   float32
}
