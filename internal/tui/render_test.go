package tui

import (
	"testing"

	"github.com/mmcdole/prompter/internal/scroll"
)

func TestLayoutRows(t *testing.T) {
	// font 24: line height 33, padding 15
	layout := scroll.Layout{NumLines: 3, LineHeight: 33, Padding: 15, ViewportHeight: 160}

	rows := layoutRows(layout, 0, 1, 8)
	want := []sheetRow{
		{line: -1},
		{line: 0, text: true},
		{line: 0},
		{line: 1, active: true},
		{line: 1, text: true, active: true},
		{line: 2},
		{line: 2, text: true},
		{line: -1},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestLayoutRowsEveryLineGetsOneTextRow(t *testing.T) {
	for _, font := range []float32{12, 24, 36, 48} {
		lh, pad := scroll.MetricsForFontSize(font)
		layout := scroll.Layout{NumLines: 40, LineHeight: lh, Padding: pad, ViewportHeight: 1 << 16}

		seen := make(map[int]int)
		for _, row := range layoutRows(layout, 0, -1, layout.ContentHeight()/UnitsPerRow+1) {
			if row.text {
				seen[row.line]++
			}
		}
		for i := 0; i < layout.NumLines; i++ {
			if seen[i] != 1 {
				t.Fatalf("font %v line %d has %d text rows", font, i, seen[i])
			}
		}
	}
}

func TestLayoutRowsScrolled(t *testing.T) {
	layout := scroll.Layout{NumLines: 10, LineHeight: 32, Padding: 0, ViewportHeight: 64}

	// offset of two lines puts line 2 at the top
	rows := layoutRows(layout, 64, 2, 4)
	if rows[0].line != 2 || rows[2].line != 3 {
		t.Fatalf("rows = %+v", rows)
	}
	if !rows[0].active || rows[2].active {
		t.Fatalf("active band = %+v", rows)
	}
}
