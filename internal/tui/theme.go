package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/artisanmap/internal/directory"
)

// Catppuccin Mocha, true-color hex values.
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	headerBarStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	headerAppStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorBrand).Bold(true).Padding(0, 1)
	activeTabStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorFocus).Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorOverlay1).Padding(0, 1)
	tabSepStyle      = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSurface2)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	spinnerStyle  = lipgloss.NewStyle().Foreground(colorBrand)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(colorText)
	selectedStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)
	descStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	countStyle    = lipgloss.NewStyle().Foreground(colorSurface2)
	searchStyle   = lipgloss.NewStyle().Foreground(colorPeach)

	errorStyle        = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	inlineBannerStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorWarning).Padding(0, 1)
	floatBannerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorWarning).Foreground(colorWarning).Padding(0, 1)
	infoTitleStyle    = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	infoHintStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	faintStyle        = lipgloss.NewStyle().Foreground(colorSurface1)
)

// kindColor gives each collection its own accent so badges and map glyphs agree.
func kindColor(k directory.Kind) lipgloss.Color {
	switch k {
	case directory.KindArtisan:
		return colorMauve
	case directory.KindPlace:
		return colorGreen
	default:
		return colorBlue
	}
}

func badgeStyle(k directory.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorBase).Background(kindColor(k)).Padding(0, 1)
}

func markerStyles() map[directory.Kind]lipgloss.Style {
	return map[directory.Kind]lipgloss.Style{
		directory.KindArtisan: lipgloss.NewStyle().Foreground(kindColor(directory.KindArtisan)).Bold(true),
		directory.KindPlace:   lipgloss.NewStyle().Foreground(kindColor(directory.KindPlace)).Bold(true),
	}
}
