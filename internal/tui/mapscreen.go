package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/artisanmap/internal/directory"
	"github.com/jask/artisanmap/internal/feed"
	"github.com/jask/artisanmap/internal/locale"
	"github.com/jask/artisanmap/internal/mapview"
)

const (
	defaultMapWidth  = 80
	defaultMapHeight = 20
)

type mapPresenter struct {
	tr     locale.Translator
	keys   keyMap
	mapCap mapview.Capability
	region mapview.Region
}

func newMapPresenter(tr locale.Translator, keys keyMap, c mapview.Capability, region mapview.Region) *mapPresenter {
	if g, ok := c.Surface(); ok {
		if grid, isGrid := g.(*mapview.GridSurface); isGrid && len(grid.Kinds) == 0 {
			grid.Kinds = markerStyles()
		}
	}
	return &mapPresenter{tr: tr, keys: keys, mapCap: c, region: region}
}

// enabled is false when no map surface exists; the screen then never loads.
func (p *mapPresenter) enabled() bool   { return p.mapCap.Available() }
func (p *mapPresenter) capturing() bool { return false }
func (p *mapPresenter) reset()          {}

func (p *mapPresenter) help() []key.Binding { return p.keys.mapHelp() }

func (p *mapPresenter) handleKey(tea.KeyMsg, feed.State) bool { return false }

func (p *mapPresenter) view(st feed.State, spin string, width, height int) string {
	surface, ok := p.mapCap.Surface()
	if !ok {
		return p.placeholder()
	}
	switch st.Phase {
	case feed.PhaseIdle:
		return ""
	case feed.PhaseLoading:
		return spin
	case feed.PhaseFailed:
		return errorStyle.Render(p.tr.T(st.Err))
	}

	if width <= 0 {
		width = defaultMapWidth
	}
	if height <= 0 {
		height = defaultMapHeight
	}
	out := surface.Render(p.region, mapview.MarkersFrom(st.Items, p.kindLabel), width, height)
	if st.FallbackBanner {
		card := floatBannerStyle.Render(p.tr.T(locale.MsgFallbackBanner))
		out = floatBanner(out, card, width, height)
	}
	return out
}

func (p *mapPresenter) placeholder() string {
	lines := []string{
		infoTitleStyle.Render(p.tr.T(locale.MsgMapUnavailable)),
		infoHintStyle.Render(p.tr.T(locale.MsgMapUnavailHint)),
	}
	if r := p.mapCap.Reason(); r != "" {
		lines = append(lines, faintStyle.Render(r))
	}
	return strings.Join(lines, "\n")
}

func (p *mapPresenter) kindLabel(k directory.Kind) string {
	return p.tr.T(kindKey(k))
}
