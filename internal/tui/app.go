// Package tui is the interactive shell: a tab bar with the list and map
// screens, both driven by feed.Machine and differing only in how they render.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/artisanmap/internal/feed"
	"github.com/jask/artisanmap/internal/locale"
	"github.com/jask/artisanmap/internal/mapview"
)

const (
	appName       = "artisanmap"
	defaultWidth  = 80
	defaultHeight = 24
)

// Tab identifies a screen.
type Tab int

const (
	TabList Tab = iota
	TabMap
	tabCount
)

func (t Tab) String() string {
	if t == TabMap {
		return "map"
	}
	return "list"
}

func (t Tab) label() locale.Key {
	if t == TabMap {
		return locale.TabMap
	}
	return locale.TabList
}

// Deps is everything the shell needs from the outside.
type Deps struct {
	Source        feed.Source
	Capability    mapview.Capability
	Region        mapview.Region
	Translator    locale.Translator
	Logger        *zap.Logger
	UnmountOnBlur bool
}

// presenter is a screen's render strategy over the shared machine.
type presenter interface {
	enabled() bool
	capturing() bool
	reset()
	help() []key.Binding
	handleKey(msg tea.KeyMsg, st feed.State) bool
	view(st feed.State, spin string, width, height int) string
}

type screen struct {
	tab     Tab
	machine *feed.Machine
	view    presenter
}

type loadedMsg struct {
	tab    Tab
	loaded feed.Loaded
}

// App ties together the screens.
type App struct {
	ctx           context.Context
	tr            locale.Translator
	logger        *zap.Logger
	keys          keyMap
	spinner       spinner.Model
	screens       [tabCount]*screen
	active        Tab
	unmountOnBlur bool
	width         int
	height        int
}

func New(ctx context.Context, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := newKeyMap(deps.Translator)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	a := &App{
		ctx:           ctx,
		tr:            deps.Translator,
		logger:        logger,
		keys:          keys,
		spinner:       sp,
		unmountOnBlur: deps.UnmountOnBlur,
	}
	a.screens[TabList] = &screen{
		tab:     TabList,
		machine: feed.New(deps.Source),
		view:    newListPresenter(deps.Translator, keys),
	}
	a.screens[TabMap] = &screen{
		tab:     TabMap,
		machine: feed.New(deps.Source),
		view:    newMapPresenter(deps.Translator, keys, deps.Capability, deps.Region),
	}
	if !deps.Capability.Available() {
		logger.Info("map disabled", zap.String("reason", deps.Capability.Reason()))
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.mount(a.active)
}

// mount (re)starts the screen's load. Screens without a capability never load.
func (a *App) mount(tab Tab) tea.Cmd {
	s := a.screens[tab]
	if !s.view.enabled() {
		return nil
	}
	ticket := s.machine.Mount(a.ctx)
	s.view.reset()
	a.logger.Debug("screen mounted", zap.Stringer("tab", tab), zap.String("token", ticket.Token))
	m := s.machine
	load := func() tea.Msg {
		return loadedMsg{tab: tab, loaded: m.Load(ticket)}
	}
	return tea.Batch(load, a.spinner.Tick)
}

// focus switches tabs, mounting the target lazily.
func (a *App) focus(next Tab) tea.Cmd {
	if next == a.active {
		return nil
	}
	prev := a.screens[a.active]
	if a.unmountOnBlur && prev.machine.Mounted() {
		prev.machine.Unmount()
		a.logger.Debug("screen unmounted", zap.Stringer("tab", prev.tab))
	}
	a.active = next
	if a.screens[next].machine.Mounted() {
		return nil
	}
	return a.mount(next)
}

func (a *App) quit() tea.Cmd {
	for _, s := range a.screens {
		s.machine.Unmount()
	}
	a.logger.Info("quit")
	return tea.Quit
}

func (a *App) loading() bool {
	for _, s := range a.screens {
		if s.machine.Mounted() && s.machine.State().Phase == feed.PhaseLoading {
			return true
		}
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case loadedMsg:
		a.apply(m)
	case spinner.TickMsg:
		if !a.loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) apply(m loadedMsg) {
	s := a.screens[m.tab]
	if !s.machine.Apply(m.loaded) {
		a.logger.Debug("stale load dropped", zap.Stringer("tab", m.tab), zap.String("token", m.loaded.Token))
		return
	}
	fields := []zap.Field{
		zap.Stringer("tab", m.tab),
		zap.Int("items", len(m.loaded.Items)),
		zap.Stringer("artisans", m.loaded.Artisans.Status),
		zap.Stringer("places", m.loaded.Places.Status),
	}
	if m.loaded.MergeErr != nil {
		a.logger.Error("merge failed", append(fields, zap.Error(m.loaded.MergeErr))...)
		return
	}
	a.logger.Info("screen loaded", fields...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := a.screens[a.active]
	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}
	if s.view.capturing() {
		s.view.handleKey(msg, s.machine.State())
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.NextTab):
		return a.focus((a.active + 1) % tabCount)
	case key.Matches(msg, a.keys.PrevTab):
		return a.focus((a.active + tabCount - 1) % tabCount)
	case key.Matches(msg, a.keys.ListTab):
		return a.focus(TabList)
	case key.Matches(msg, a.keys.MapTab):
		return a.focus(TabMap)
	case key.Matches(msg, a.keys.Refresh):
		return a.mount(a.active)
	}
	s.view.handleKey(msg, s.machine.State())
	return nil
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (a *App) View() string {
	w, h := a.size()
	header := a.renderHeader(w)
	s := a.screens[a.active]
	footer := renderHelp(s.view.help(), w)
	bodyH := max(h-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	body := s.view.view(s.machine.State(), a.spinner.View(), w, bodyH)
	return header + "\n" + fitCanvas(body, w, bodyH) + "\n" + footer
}

func (a *App) renderHeader(width int) string {
	tabs := make([]string, 0, tabCount)
	for i, s := range a.screens {
		label := a.tr.T(s.tab.label())
		if Tab(i) == a.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	line := headerAppStyle.Render(appName) + tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))
	return headerBarStyle.Width(width).MaxWidth(width).Render(line)
}

// Snapshot mounts one screen, waits for its load and returns the rendered
// body without the tab bar or help line. A height of 0 prints the whole list.
func Snapshot(ctx context.Context, deps Deps, tab Tab, width, height int) string {
	a := New(ctx, deps)
	s := a.screens[tab]
	if s.view.enabled() {
		m := s.machine
		ticket := m.Mount(ctx)
		a.apply(loadedMsg{tab: tab, loaded: m.Load(ticket)})
		m.Unmount()
	}
	return s.view.view(s.machine.State(), "", width, height)
}
