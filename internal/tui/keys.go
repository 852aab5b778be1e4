package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/artisanmap/internal/locale"
)

type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	ListTab  key.Binding
	MapTab   key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Search   key.Binding
	Cancel   key.Binding
}

func newKeyMap(tr locale.Translator) keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", tr.T(locale.HelpQuit))),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", tr.T(locale.HelpSwitchTab))),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab")),
		ListTab:  key.NewBinding(key.WithKeys("1")),
		MapTab:   key.NewBinding(key.WithKeys("2")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", tr.T(locale.HelpRefresh))),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", tr.T(locale.HelpNavigate))),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Top:      key.NewBinding(key.WithKeys("g", "home")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", tr.T(locale.HelpSearch))),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
	}
}

// listHelp and mapHelp feed the footer for each tab.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.NextTab, k.Refresh, k.Quit}
}

func (k keyMap) mapHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Quit}
}

func renderHelp(bindings []key.Binding, width int) string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	line := space + strings.Join(parts, sep)
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().Background(bg).Width(width).MaxWidth(width).Render(line)
}
