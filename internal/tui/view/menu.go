package view

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/tui/actions"
	"github.com/glabrego/burrow/internal/tui/theme"
)

// Menu is a parsed menu page. Selection moves only among link lines;
// info lines are display-only.
type Menu struct {
	title     string
	url       string
	raw       string
	lines     []gopher.MenuLine
	links     []int // indices into lines that are links
	sel       int   // index into links
	offset    int   // scroll offset in lines
	cols      int
	rows      int
	wide      bool
	transport gopher.Transport
	search    string
	th        theme.Theme
}

// NewMenu parses a raw menu payload into a view.
func NewMenu(title, url, raw string, transport gopher.Transport, th theme.Theme) *Menu {
	m := &Menu{
		title:     title,
		url:       url,
		raw:       raw,
		lines:     gopher.ParseMenu(raw),
		transport: transport,
		th:        th,
	}
	for i, line := range m.lines {
		if line.IsLink() {
			m.links = append(m.links, i)
		}
	}
	return m
}

func (m *Menu) URL() string     { return m.url }
func (m *Menu) Title() string   { return m.title }
func (m *Menu) Raw() string     { return m.raw }
func (m *Menu) TLS() bool       { return m.transport == gopher.TransportTLS }
func (m *Menu) Tor() bool       { return m.transport == gopher.TransportTor }
func (m *Menu) Wide() bool      { return m.wide }
func (m *Menu) SetWide(on bool) { m.wide = on }

func (m *Menu) Resize(cols, rows int) {
	m.cols = cols
	m.rows = rows
	m.scrollToSelection()
}

// Selected returns the currently selected link line, if any.
func (m *Menu) Selected() (gopher.MenuLine, bool) {
	if len(m.links) == 0 {
		return gopher.MenuLine{}, false
	}
	return m.lines[m.links[m.sel]], true
}

func (m *Menu) Respond(key tea.KeyMsg) actions.Action {
	switch key.String() {
	case "up", "ctrl+p":
		m.search = ""
		m.moveSelection(-1)
		return actions.Redraw{}
	case "down", "ctrl+n":
		m.search = ""
		m.moveSelection(1)
		return actions.Redraw{}
	case "pgup", "-":
		m.search = ""
		m.moveSelection(-ScrollLines)
		return actions.Redraw{}
	case "pgdown", " ":
		m.search = ""
		m.moveSelection(ScrollLines)
		return actions.Redraw{}
	case "enter":
		m.search = ""
		return m.openSelected()
	case "backspace":
		if m.search != "" {
			r := []rune(m.search)
			m.search = string(r[:len(r)-1])
			return actions.Redraw{}
		}
		return actions.Keypress{Key: key}
	case "esc":
		if m.search != "" {
			m.search = ""
			return actions.Redraw{}
		}
		return actions.Keypress{Key: key}
	}

	if r, ok := isPlainRune(key); ok {
		if r >= '0' && r <= '9' {
			m.search = ""
			return m.numericSelect(int(r - '0'))
		}
		if unicode.IsPrint(r) {
			act := m.searchStep(r)
			// A letter that can't start a search falls through to the
			// app-level shortcuts.
			if _, dead := act.(actions.NoOp); dead && m.search == "" {
				return actions.Keypress{Key: key}
			}
			return act
		}
	}
	return actions.Keypress{Key: key}
}

// moveSelection moves among links by delta, clamped, then adjusts the
// scroll offset minimally so the selection stays visible.
func (m *Menu) moveSelection(delta int) {
	if len(m.links) == 0 {
		// Nothing to select; paging just scrolls info text.
		m.offset = clampOffset(m.offset+delta, len(m.lines), m.rows)
		return
	}
	m.sel += delta
	if m.sel < 0 {
		m.sel = 0
	}
	if m.sel > len(m.links)-1 {
		m.sel = len(m.links) - 1
	}
	m.scrollToSelection()
}

func (m *Menu) scrollToSelection() {
	if len(m.links) == 0 || m.rows <= 0 {
		return
	}
	line := m.links[m.sel]
	if line < m.offset {
		m.offset = line
	}
	if line >= m.offset+m.rows {
		m.offset = line - m.rows + 1
	}
}

// openSelected produces the Open (or Prompt, for search servers)
// action for the current selection.
func (m *Menu) openSelected() actions.Action {
	line, ok := m.Selected()
	if !ok {
		return actions.NoOp{}
	}
	if line.Type == gopher.Search {
		return actions.Prompt{
			Label: line.Text + "> ",
			Then: func(query string) actions.Action {
				u := gopher.URL{
					Host:     line.Host,
					Port:     line.Port,
					Type:     line.Type,
					Selector: line.Selector + "\t" + query,
				}
				return actions.Open{Title: line.Text, URL: u.String()}
			},
		}
	}
	return actions.Open{Title: line.Text, URL: line.URL()}
}

// numericSelect handles a digit keystroke. With at most 9 links a
// digit opens that link directly; with more, a single digit can't
// address every position, so it only moves the selection and Enter
// confirms.
func (m *Menu) numericSelect(d int) actions.Action {
	if d < 1 || d > len(m.links) {
		return actions.NoOp{}
	}
	m.sel = d - 1
	m.scrollToSelection()
	if len(m.links) <= 9 {
		return m.openSelected()
	}
	return actions.Redraw{}
}

// searchStep extends the incremental search buffer by one character.
// The buffer grows only when the extended query matches some link;
// otherwise it is left untouched and the keystroke is dropped.
func (m *Menu) searchStep(r rune) actions.Action {
	candidate := m.search + string(r)
	idx, ok := m.findLink(candidate)
	if !ok {
		return actions.NoOp{}
	}
	m.search = candidate
	m.sel = idx
	m.scrollToSelection()
	return actions.Redraw{}
}

// findLink searches link display text case-insensitively for the
// first match strictly after the current selection, wrapping to the
// top. The current selection is considered last so a growing query
// can stay put.
func (m *Menu) findLink(query string) (int, bool) {
	if len(m.links) == 0 {
		return 0, false
	}
	q := strings.ToLower(query)
	for i := 1; i <= len(m.links); i++ {
		idx := (m.sel + i) % len(m.links)
		if strings.Contains(strings.ToLower(m.lines[m.links[idx]].Text), q) {
			return idx, true
		}
	}
	return 0, false
}

func (m *Menu) Render() string {
	rows := m.rows
	if rows <= 0 {
		rows = len(m.lines)
	}
	end := m.offset + rows
	if end > len(m.lines) {
		end = len(m.lines)
	}

	selLine := -1
	if len(m.links) > 0 {
		selLine = m.links[m.sel]
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		line := m.lines[i]
		text := line.Text
		if m.cols > 4 && !m.wide {
			text = runewidth.Truncate(text, m.cols-4, "...")
		}
		styled := m.th.StyleFor(line.Type).Render(text)
		if line.IsLink() {
			marker := "  "
			if i == selLine {
				marker = "> "
			}
			b.WriteString(marker)
			b.WriteString(m.th.RenderActiveLine(i == selLine, styled))
		} else {
			b.WriteString("  ")
			b.WriteString(styled)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SearchQuery returns the pending incremental-search buffer.
func (m *Menu) SearchQuery() string { return m.search }

// LinkCount returns the number of navigable lines.
func (m *Menu) LinkCount() int { return len(m.links) }
