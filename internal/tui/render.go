package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/prompter/internal/scroll"
	"github.com/mmcdole/prompter/internal/tui/styles"
)

// UnitsPerRow is the height of one terminal row in display units
const UnitsPerRow = 16

// sheetRow is the content of one terminal row of the lyric sheet
type sheetRow struct {
	line   int  // lyric line under this row, -1 for padding
	text   bool // row carries the line's text
	active bool
}

// layoutRows maps terminal rows to lyric lines. A line's text sits on the
// row containing the line's vertical centre; its other rows are blank but
// still take the active highlight.
func layoutRows(layout scroll.Layout, offset float64, active, rows int) []sheetRow {
	out := make([]sheetRow, rows)
	lh := float64(layout.LineHeight)
	for r := range out {
		out[r].line = -1
		if lh <= 0 {
			continue
		}

		y := offset + (float64(r)+0.5)*UnitsPerRow
		rel := y - float64(layout.Padding)
		if rel < 0 {
			continue
		}
		i := int(math.Floor(rel / lh))
		if i >= layout.NumLines {
			continue
		}

		centre := layout.LineTop(i) + lh/2
		out[r] = sheetRow{
			line:   i,
			text:   int(math.Floor((centre-offset)/UnitsPerRow)) == r,
			active: i == active,
		}
	}
	return out
}

// renderSheet draws the visible part of the lyric sheet
func renderSheet(st styles.Styles, lines []string, layout scroll.Layout, offset float64, active, width, rows int) string {
	if rows <= 0 || width <= 0 {
		return ""
	}

	lineStyle := st.Line.Width(width).Align(lipgloss.Center)
	activeStyle := st.ActiveLine.Width(width).Align(lipgloss.Center)
	bandStyle := st.ActiveBand.Width(width)
	blankStyle := st.Sheet.Width(width)

	out := make([]string, 0, rows)
	for _, row := range layoutRows(layout, offset, active, rows) {
		switch {
		case row.line < 0:
			out = append(out, blankStyle.Render(""))
		case row.text && row.active:
			out = append(out, activeStyle.Render(lineText(lines, row.line, width)))
		case row.text:
			out = append(out, lineStyle.Render(lineText(lines, row.line, width)))
		case row.active:
			out = append(out, bandStyle.Render(""))
		default:
			out = append(out, blankStyle.Render(""))
		}
	}
	return strings.Join(out, "\n")
}

func lineText(lines []string, i, width int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return styles.Truncate(lines[i], width)
}

// splitLines splits the lyric sheet the same way scroll.CountLines counts it
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
