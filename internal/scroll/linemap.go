// Package scroll maps transport position onto lyric lines and eases the
// displayed scroll offset toward a target.
package scroll

import (
	"math"

	"github.com/mmcdole/prompter/internal/domain"
)

// ActiveLine returns the index of the line being performed at bar.
//
// Progress through [startBar, endBar] is spread evenly over the lines and
// floored, so the last line is reached exactly at endBar. A degenerate range
// (endBar <= startBar) always yields line 0. The result is in
// [0, max(0, numLines-1)] for every input: NaN progress maps to 0 and
// infinite bar positions saturate at the first or last line.
func ActiveLine(bar float64, startBar, endBar float32, numLines int) int {
	progress := 0.0
	if endBar > startBar {
		progress = (bar - float64(startBar)) / (float64(endBar) - float64(startBar))
	}
	progress = clampUnit(progress)

	maxIndex := max(0, numLines-1)
	line := int(math.Floor(progress * float64(maxIndex)))
	return min(max(line, 0), maxIndex)
}

// ActiveLineInRange is ActiveLine with the range taken from a RangeConfig.
func ActiveLineInRange(bar float64, r domain.RangeConfig, numLines int) int {
	return ActiveLine(bar, r.StartBar, r.EndBar, numLines)
}

// clampUnit clamps v to [0, 1], mapping NaN to 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
