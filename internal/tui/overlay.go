package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// floatBanner composites card over the first rows of base, horizontally
// centered, leaving the rest of the canvas intact.
func floatBanner(base, card string, width, height int) string {
	if width <= 0 || height <= 0 {
		return base
	}
	canvas := fitCanvas(base, width, height)
	cardLines := canvasLines(card, 0)
	cw := widest(cardLines)
	if cw == 0 {
		return canvas
	}
	x := max((width-cw)/2, 0)
	return overlayAt(canvas, cardLines, x, 1, width, height)
}

func overlayAt(canvas string, card []string, x, y, width, height int) string {
	rows := canvasLines(canvas, height)
	cw := widest(card)
	for i, line := range card {
		row := y + i
		if row < 0 || row >= len(rows) {
			continue
		}
		under := padRight(rows[row], width)
		left := ansi.Truncate(under, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		mid := padRight(line, cw)
		end := x + ansi.StringWidth(mid)
		right := cutLeft(under, end)
		if gap := width - end - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
		rows[row] = ansi.Truncate(left+mid+right, width, "")
	}
	return strings.Join(rows, "\n")
}

// fitCanvas pads or clips s to exactly width x height cells.
func fitCanvas(s string, width, height int) string {
	rows := canvasLines(s, height)
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}
	return strings.Join(rows, "\n")
}

func canvasLines(s string, height int) []string {
	rows := strings.Split(s, "\n")
	if height <= 0 {
		return rows
	}
	if len(rows) > height {
		return rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

func widest(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

// cutLeft drops the first cols cells of s, keeping its styling.
func cutLeft(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
