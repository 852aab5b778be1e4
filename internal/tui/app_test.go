package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/artisanmap/internal/client"
	"github.com/jask/artisanmap/internal/directory"
	"github.com/jask/artisanmap/internal/feed"
	"github.com/jask/artisanmap/internal/locale"
	"github.com/jask/artisanmap/internal/mapview"
)

type countingSource struct {
	artisans client.Result[[]directory.Item]
	places   client.Result[[]directory.Item]
	calls    atomic.Int32
}

func (s *countingSource) FetchArtisans(context.Context) client.Result[[]directory.Item] {
	s.calls.Add(1)
	return s.artisans
}

func (s *countingSource) FetchPlaces(context.Context) client.Result[[]directory.Item] {
	s.calls.Add(1)
	return s.places
}

func sampleArtisans() []directory.Item {
	return []directory.Item{
		{ID: 1, Name: "Taller de Barro", Category: "Alfarería", Description: "Piezas de barro bruñido", Lat: 20.055, Lng: -99.345},
		{ID: 2, Name: "Textiles Otomí", Category: "Bordado", Description: "Bordados tenangos", Lat: 20.048, Lng: -99.338},
	}
}

func samplePlaces() []directory.Item {
	return []directory.Item{
		{ID: 1, Name: "Museo de Tula", Type: "Museo", Description: "Zona arqueológica", Lat: 20.064, Lng: -99.331},
	}
}

func liveSource() *countingSource {
	return &countingSource{
		artisans: client.Ok(sampleArtisans()),
		places:   client.Ok(samplePlaces()),
	}
}

func newTestApp(t *testing.T, src feed.Source, c mapview.Capability, unmountOnBlur bool) *App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := New(ctx, Deps{
		Source:        src,
		Capability:    c,
		Region:        mapview.DefaultRegion(),
		Translator:    locale.New("es"),
		UnmountOnBlur: unmountOnBlur,
	})
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a
}

func gridCapability() mapview.Capability {
	return mapview.NewResolver().Resolve("grid")
}

// collect runs cmd and flattens batches, keeping only load results.
func collect(cmd tea.Cmd) []loadedMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []loadedMsg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case loadedMsg:
		return []loadedMsg{msg}
	default:
		return nil
	}
}

func deliver(a *App, msgs []loadedMsg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plain(a *App) string {
	return ansi.Strip(a.View())
}

func TestInitMountsListOnly(t *testing.T) {
	src := liveSource()
	a := newTestApp(t, src, gridCapability(), false)

	cmd := a.Init()
	require.Equal(t, feed.PhaseLoading, a.screens[TabList].machine.State().Phase)
	require.Equal(t, feed.PhaseIdle, a.screens[TabMap].machine.State().Phase)

	deliver(a, collect(cmd))
	require.Equal(t, int32(2), src.calls.Load())
	require.Equal(t, feed.PhaseReady, a.screens[TabList].machine.State().Phase)
}

func TestListLoadingRendersSpinnerOnly(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	a.Init()

	l := a.screens[TabList].view
	require.Equal(t, "SPIN", l.view(a.screens[TabList].machine.State(), "SPIN", 80, 20))
}

func TestListReadyRendersRows(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	deliver(a, collect(a.Init()))

	out := plain(a)
	require.Contains(t, out, "Listado")
	require.Contains(t, out, "Taller de Barro")
	require.Contains(t, out, "Artesano")
	require.Contains(t, out, "Alfarería")
	require.Contains(t, out, "Museo de Tula")
	require.Contains(t, out, "Lugar")
	require.Contains(t, out, "3 elementos")
	require.NotContains(t, out, "Sin conexión")
	require.Less(t, strings.Index(out, "Taller de Barro"), strings.Index(out, "Museo de Tula"))
}

func TestListFallbackBanner(t *testing.T) {
	src := liveSource()
	src.places = client.Degraded(samplePlaces(), errors.New("connection refused"))
	a := newTestApp(t, src, gridCapability(), false)
	deliver(a, collect(a.Init()))

	out := plain(a)
	require.Contains(t, out, "Sin conexión con el servidor")
	require.Contains(t, out, "Museo de Tula")
}

func TestListMergeFailureShowsError(t *testing.T) {
	src := liveSource()
	src.artisans = client.Ok([]directory.Item{{ID: 9, Name: "", Lat: 20, Lng: -99}})
	a := newTestApp(t, src, gridCapability(), false)
	deliver(a, collect(a.Init()))

	out := plain(a)
	require.Equal(t, feed.PhaseFailed, a.screens[TabList].machine.State().Phase)
	require.Contains(t, out, "No se pudieron cargar los datos")
	require.NotContains(t, out, "Museo de Tula")
}

func TestListCursorAndSearch(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	deliver(a, collect(a.Init()))
	l := a.screens[TabList].view.(*listPresenter)

	a.Update(runes("j"))
	a.Update(runes("j"))
	a.Update(runes("j"))
	require.Equal(t, 2, l.cursor)
	a.Update(runes("g"))
	require.Equal(t, 0, l.cursor)
	a.Update(runes("G"))
	require.Equal(t, 2, l.cursor)

	a.Update(runes("/"))
	require.True(t, l.capturing())
	for _, r := range "museo" {
		a.Update(runes(string(r)))
	}
	// q is text while searching.
	_, cmd := a.Update(runes("q"))
	require.Nil(t, cmd)
	a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, l.capturing())
	require.Equal(t, "museo", l.query)

	out := plain(a)
	require.Contains(t, out, "Museo de Tula")
	require.NotContains(t, out, "Taller de Barro")
	require.Contains(t, out, "1 elementos")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, l.query)
	require.Contains(t, plain(a), "Taller de Barro")
}

func TestListSearchNoMatches(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	deliver(a, collect(a.Init()))

	a.Update(runes("/"))
	a.Update(runes("zzzz"))
	require.Contains(t, plain(a), "Sin resultados para «zzzz»")
}

func TestListScrollKeepsCursorVisible(t *testing.T) {
	items := make([]directory.Item, 0, 20)
	for i := 1; i <= 20; i++ {
		items = append(items, directory.Item{ID: i, Name: "Taller " + string(rune('A'+i-1)), Lat: 20.05, Lng: -99.34})
	}
	src := &countingSource{artisans: client.Ok(items), places: client.Ok([]directory.Item{})}
	a := newTestApp(t, src, gridCapability(), false)
	deliver(a, collect(a.Init()))

	a.Update(runes("G"))
	out := plain(a)
	require.Contains(t, out, "Taller T")
	require.NotContains(t, out, "Taller A ")
}

func TestMapUnavailableNeverFetches(t *testing.T) {
	src := liveSource()
	a := newTestApp(t, src, mapview.Unavailable("map disabled"), false)

	_, cmd := a.Update(runes("2"))
	require.Nil(t, cmd)
	require.Equal(t, TabMap, a.active)

	_, cmd = a.Update(runes("r"))
	require.Nil(t, cmd)

	out := plain(a)
	require.Contains(t, out, "El mapa no está disponible")
	require.Contains(t, out, "map disabled")
	require.Zero(t, src.calls.Load())
	require.Equal(t, feed.PhaseIdle, a.screens[TabMap].machine.State().Phase)
}

func TestMapRendersMarkersWithFloatingBanner(t *testing.T) {
	src := liveSource()
	src.artisans = client.Degraded(sampleArtisans(), errors.New("timeout"))
	a := newTestApp(t, src, gridCapability(), false)

	_, cmd := a.Update(runes("2"))
	deliver(a, collect(cmd))

	out := plain(a)
	require.Equal(t, feed.PhaseReady, a.screens[TabMap].machine.State().Phase)
	require.Contains(t, out, "Mapa")
	require.Contains(t, out, "Museo de Tula (Lugar)")
	require.Contains(t, out, "Taller de Barro (Artesano)")
	require.Contains(t, out, "Sin conexión con el servidor")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 24)
	for _, l := range lines {
		require.LessOrEqual(t, ansi.StringWidth(l), 80)
	}
}

func TestUnmountOnBlurDropsStaleLoad(t *testing.T) {
	src := liveSource()
	a := newTestApp(t, src, gridCapability(), true)
	list := a.screens[TabList].machine

	pending := a.Init()
	_, mapCmd := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, mapCmd)
	require.False(t, list.Mounted())

	rev := list.Revision()
	deliver(a, collect(pending))
	require.Equal(t, rev, list.Revision())
	require.Equal(t, feed.PhaseLoading, list.State().Phase)

	_, back := a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.NotNil(t, back)
	deliver(a, collect(back))
	require.Equal(t, feed.PhaseReady, list.State().Phase)
}

func TestRefocusKeepsStateWithoutUnmountOnBlur(t *testing.T) {
	src := liveSource()
	a := newTestApp(t, src, gridCapability(), false)
	deliver(a, collect(a.Init()))

	_, cmd := a.Update(runes("2"))
	deliver(a, collect(cmd))
	_, cmd = a.Update(runes("1"))
	require.Nil(t, cmd)
	require.Equal(t, int32(4), src.calls.Load())
}

func TestRefreshSupersedesInFlightLoad(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	first := a.Init()
	_, second := a.Update(runes("r"))

	list := a.screens[TabList].machine
	rev := list.Revision()
	deliver(a, collect(first))
	require.Equal(t, rev, list.Revision())

	deliver(a, collect(second))
	require.Equal(t, feed.PhaseReady, list.State().Phase)
}

func TestQuitUnmountsScreens(t *testing.T) {
	a := newTestApp(t, liveSource(), gridCapability(), false)
	a.Init()

	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.False(t, a.screens[TabList].machine.Mounted())
}

func TestSnapshot(t *testing.T) {
	deps := Deps{
		Source:     liveSource(),
		Capability: gridCapability(),
		Region:     mapview.DefaultRegion(),
		Translator: locale.New("en"),
	}

	list := ansi.Strip(Snapshot(context.Background(), deps, TabList, 60, 0))
	require.Contains(t, list, "Textiles Otomí")
	require.Contains(t, list, "Artisan")
	require.Contains(t, list, "3 items")

	m := ansi.Strip(Snapshot(context.Background(), deps, TabMap, 60, 16))
	require.Contains(t, m, "Museo de Tula (Place)")

	deps.Capability = mapview.Unavailable("")
	require.Contains(t, ansi.Strip(Snapshot(context.Background(), deps, TabMap, 60, 16)), "The map is not available")
}
