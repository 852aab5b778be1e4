package mapview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/artisanmap/internal/directory"
)

const (
	glyphs        = "123456789abcdefghijklmnopqrstuvwxyz"
	glyphOverflow = '*'
	glyphStacked  = '#'
	glyphCenter   = '+'
	glyphGrid     = '·'
	gridStep      = 6
)

// GridSurface draws markers on a character grid with a numbered legend.
type GridSurface struct {
	Border lipgloss.Style
	Grid   lipgloss.Style
	Kinds  map[directory.Kind]lipgloss.Style
}

func NewGridSurface() *GridSurface {
	return &GridSurface{
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		Grid:   lipgloss.NewStyle().Faint(true),
		Kinds:  map[directory.Kind]lipgloss.Style{},
	}
}

func (g *GridSurface) Name() string { return "grid" }

// Render fills width x height: a bordered grid on top, the legend below.
func (g *GridSurface) Render(region Region, markers []Marker, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	legend := g.legend(markers, width)
	innerW := max(width-2, 8)
	innerH := max(height-len(legend)-2, 3)

	region = FitRegion(region, markers)
	cells := make([][]string, innerH)
	for row := range cells {
		cells[row] = make([]string, innerW)
		for col := range cells[row] {
			cells[row][col] = " "
			if row%3 == 0 && col%gridStep == 0 {
				cells[row][col] = g.Grid.Render(string(glyphGrid))
			}
		}
	}
	cr, cc := project(region, region.Lat, region.Lng, innerW, innerH)
	cells[cr][cc] = g.Grid.Render(string(glyphCenter))

	taken := map[[2]int]bool{}
	for i, m := range markers {
		row, col := project(region, m.Lat, m.Lng, innerW, innerH)
		glyph := glyphFor(i)
		if taken[[2]int{row, col}] {
			glyph = glyphStacked
		}
		taken[[2]int{row, col}] = true
		cells[row][col] = g.kindStyle(m.Kind).Render(string(glyph))
	}

	rows := make([]string, innerH)
	for i, r := range cells {
		rows[i] = strings.Join(r, "")
	}
	out := g.Border.Render(strings.Join(rows, "\n"))
	if len(legend) > 0 {
		out += "\n" + strings.Join(legend, "\n")
	}
	return out
}

func (g *GridSurface) legend(markers []Marker, width int) []string {
	lines := make([]string, 0, len(markers))
	for i, m := range markers {
		glyph := g.kindStyle(m.Kind).Render(string(glyphFor(i)))
		line := fmt.Sprintf("%s %s (%s)", glyph, m.Label, m.KindLabel)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return lines
}

func (g *GridSurface) kindStyle(k directory.Kind) lipgloss.Style {
	if s, ok := g.Kinds[k]; ok {
		return s
	}
	return lipgloss.NewStyle().Bold(true)
}

func glyphFor(i int) rune {
	if i < 0 || i >= len(glyphs) {
		return glyphOverflow
	}
	return rune(glyphs[i])
}

// project maps a coordinate to a (row, col) cell, north up.
func project(r Region, lat, lng float64, w, h int) (int, int) {
	r = r.normalized()
	x := (lng - (r.Lng - r.LngDelta)) / (2 * r.LngDelta)
	y := ((r.Lat + r.LatDelta) - lat) / (2 * r.LatDelta)
	col := int(math.Round(x * float64(w-1)))
	row := int(math.Round(y * float64(h-1)))
	return clamp(row, 0, h-1), clamp(col, 0, w-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
