package scroll

import (
	"math"
	"strings"
)

// Font size bounds accepted by MetricsForFontSize.
const (
	MinFontSize = 12
	MaxFontSize = 48
)

// Layout describes the lyric sheet in display units.
type Layout struct {
	NumLines       int
	LineHeight     int
	Padding        int
	ViewportHeight int
}

// NewLayout builds a layout for text rendered at fontSize in a viewport of
// the given height.
func NewLayout(text string, fontSize float32, viewportHeight int) Layout {
	lineHeight, padding := MetricsForFontSize(fontSize)
	return Layout{
		NumLines:       CountLines(text),
		LineHeight:     lineHeight,
		Padding:        padding,
		ViewportHeight: max(0, viewportHeight),
	}
}

// MetricsForFontSize returns line height and padding for a font size.
// Lines get 35% extra spacing; padding is 60% of the font height.
func MetricsForFontSize(fontSize float32) (lineHeight, padding int) {
	size := float64(fontSize)
	if math.IsNaN(size) || size < MinFontSize {
		size = MinFontSize
	}
	if size > MaxFontSize {
		size = MaxFontSize
	}
	lineHeight = int(math.Ceil(size + size*0.35))
	padding = int(math.Ceil(size * 0.6))
	return lineHeight, padding
}

// CountLines counts newline-separated lines. Empty text is one line.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// ContentHeight is the scrollable height: every line plus padding above and
// below, never shorter than the viewport.
func (l Layout) ContentHeight() int {
	return max(l.ViewportHeight, max(0, l.NumLines)*l.LineHeight+l.Padding*2)
}

// MaxOffset is the largest scroll offset that keeps the viewport inside the
// content.
func (l Layout) MaxOffset() float64 {
	return float64(max(0, l.ContentHeight()-l.ViewportHeight))
}

// LastLine is the highest valid line index.
func (l Layout) LastLine() int {
	return max(0, l.NumLines-1)
}

// LineTop is the offset of the top edge of line i. i is not clamped.
func (l Layout) LineTop(i int) float64 {
	return float64(l.Padding + i*l.LineHeight)
}
