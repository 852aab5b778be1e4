package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/artisanmap/internal/directory"
	"github.com/jask/artisanmap/internal/feed"
	"github.com/jask/artisanmap/internal/locale"
)

// rowHeight is the number of lines each item takes: name and badge,
// subtitle, description.
const rowHeight = 3

type listPresenter struct {
	tr   locale.Translator
	keys keyMap

	cursor    int
	offset    int
	page      int
	searching bool
	query     string
}

func newListPresenter(tr locale.Translator, keys keyMap) *listPresenter {
	return &listPresenter{tr: tr, keys: keys, page: 1}
}

func (l *listPresenter) enabled() bool   { return true }
func (l *listPresenter) capturing() bool { return l.searching }

func (l *listPresenter) help() []key.Binding { return l.keys.listHelp() }

func (l *listPresenter) rows(st feed.State) []directory.TaggedItem {
	if st.Phase != feed.PhaseReady {
		return nil
	}
	return directory.Filter(st.Items, l.query)
}

func (l *listPresenter) handleKey(msg tea.KeyMsg, st feed.State) bool {
	if l.searching {
		return l.handleSearchKey(msg)
	}
	if st.Phase != feed.PhaseReady {
		return false
	}
	n := len(l.rows(st))
	switch {
	case key.Matches(msg, l.keys.Up):
		l.cursor--
	case key.Matches(msg, l.keys.Down):
		l.cursor++
	case key.Matches(msg, l.keys.PageUp):
		l.cursor -= l.page
	case key.Matches(msg, l.keys.PageDown):
		l.cursor += l.page
	case key.Matches(msg, l.keys.Top):
		l.cursor = 0
	case key.Matches(msg, l.keys.Bottom):
		l.cursor = n - 1
	case key.Matches(msg, l.keys.Search):
		l.searching = true
	case key.Matches(msg, l.keys.Cancel):
		if l.query == "" {
			return false
		}
		l.setQuery("")
	default:
		return false
	}
	l.cursor = max(min(l.cursor, n-1), 0)
	return true
}

func (l *listPresenter) handleSearchKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		l.searching = false
		l.setQuery("")
	case tea.KeyEnter:
		l.searching = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if l.query != "" {
			_, size := utf8.DecodeLastRuneInString(l.query)
			l.setQuery(l.query[:len(l.query)-size])
		}
	case tea.KeySpace:
		l.setQuery(l.query + " ")
	case tea.KeyRunes:
		l.setQuery(l.query + string(msg.Runes))
	default:
		return false
	}
	return true
}

func (l *listPresenter) setQuery(q string) {
	l.query = q
	l.cursor, l.offset = 0, 0
}

// reset runs after a fresh load lands.
func (l *listPresenter) reset() {
	l.cursor, l.offset = 0, 0
}

// view renders st. A non-positive height disables scrolling and prints every row.
func (l *listPresenter) view(st feed.State, spin string, width, height int) string {
	switch st.Phase {
	case feed.PhaseIdle:
		return ""
	case feed.PhaseLoading:
		return spin
	case feed.PhaseFailed:
		return errorStyle.Render(l.tr.T(st.Err))
	}

	var out []string
	if st.FallbackBanner {
		out = append(out, clip(inlineBannerStyle.Render(l.tr.T(locale.MsgFallbackBanner)), width))
	}
	if l.searching || l.query != "" {
		prompt := searchStyle.Render(l.tr.T(locale.MsgSearchPrompt)) + l.query
		if l.searching {
			prompt += cursorStyle.Render("█")
		}
		out = append(out, clip(prompt, width))
	}

	rows := l.rows(st)
	if len(rows) == 0 {
		msg := l.tr.T(locale.MsgEmpty)
		if l.query != "" {
			msg = l.tr.T(locale.MsgNoMatches, l.query)
		}
		return strings.Join(append(out, infoHintStyle.Render(msg)), "\n")
	}

	visible := len(rows)
	if height > 0 {
		visible = max((height-len(out)-1)/rowHeight, 1)
	}
	l.page = visible
	l.cursor = max(min(l.cursor, len(rows)-1), 0)
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	l.offset = max(min(l.offset, len(rows)-visible), 0)

	for i := l.offset; i < min(len(rows), l.offset+visible); i++ {
		out = append(out, l.renderRow(rows[i], i == l.cursor, width)...)
	}
	out = append(out, countStyle.Render(l.tr.T(locale.MsgItemsCount, len(rows))))
	return strings.Join(out, "\n")
}

func (l *listPresenter) renderRow(it directory.TaggedItem, selected bool, width int) []string {
	gutter := "  "
	title := nameStyle
	if selected {
		gutter = cursorStyle.Render("▌ ")
		title = selectedStyle
	}
	badge := badgeStyle(it.Kind).Render(l.tr.T(kindKey(it.Kind)))
	return []string{
		clip(gutter+title.Render(it.Name)+" "+badge, width),
		clip("  "+subtitleStyle.Render(it.Subtitle()), width),
		clip("  "+descStyle.Render(it.Description), width),
	}
}

func kindKey(k directory.Kind) locale.Key {
	if k == directory.KindPlace {
		return locale.KindPlace
	}
	return locale.KindArtisan
}

func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
