package view

import (
	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/tui/actions"
)

// wrapCacheSize bounds how many per-width layouts a page keeps around
// while the terminal is being resized.
const wrapCacheSize = 8

// Text is a plain text page. Wrapped layouts are cached per width so
// resizes back to a recent width don't re-wrap the whole body.
type Text struct {
	title     string
	url       string
	raw       string
	rawLines  []string
	offset    int
	cols      int
	rows      int
	wide      bool
	transport gopher.Transport

	wrapped *lru.Cache[int, []string]
}

// NewText builds a text page from a raw payload.
func NewText(title, url, raw string, transport gopher.Transport) *Text {
	cache, _ := lru.New[int, []string](wrapCacheSize)
	return &Text{
		title:     title,
		url:       url,
		raw:       raw,
		rawLines:  splitLines(raw),
		transport: transport,
		wrapped:   cache,
	}
}

func (t *Text) URL() string   { return t.url }
func (t *Text) Title() string { return t.title }
func (t *Text) Raw() string   { return t.raw }
func (t *Text) TLS() bool     { return t.transport == gopher.TransportTLS }
func (t *Text) Tor() bool     { return t.transport == gopher.TransportTor }
func (t *Text) Wide() bool    { return t.wide }

func (t *Text) SetWide(on bool) {
	if t.wide != on {
		t.wide = on
		t.offset = 0
	}
}

func (t *Text) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.offset = clampOffset(t.offset, len(t.lines()), t.rows)
}

// wrapWidth is the effective wrap column: the terminal width capped
// at MaxCols, since long gopher text reads poorly at full width.
func (t *Text) wrapWidth() int {
	w := t.cols
	if w <= 0 || w > MaxCols {
		w = MaxCols
	}
	return w
}

// lines returns the display lines for the current width, wrapping on
// demand. Wide mode shows the raw lines untouched.
func (t *Text) lines() []string {
	if t.wide {
		return t.rawLines
	}
	width := t.wrapWidth()
	if cached, ok := t.wrapped.Get(width); ok {
		return cached
	}
	var out []string
	for _, line := range t.rawLines {
		out = append(out, wrapLine(line, width)...)
	}
	t.wrapped.Add(width, out)
	return out
}

func (t *Text) Respond(key tea.KeyMsg) actions.Action {
	switch key.String() {
	case "up", "ctrl+p":
		return t.scroll(-1)
	case "down", "ctrl+n":
		return t.scroll(1)
	case "pgup", "-":
		return t.scroll(-ScrollLines)
	case "pgdown", " ":
		return t.scroll(ScrollLines)
	}
	return actions.Keypress{Key: key}
}

func (t *Text) scroll(delta int) actions.Action {
	next := clampOffset(t.offset+delta, len(t.lines()), t.rows)
	if next == t.offset {
		return actions.NoOp{}
	}
	t.offset = next
	return actions.Redraw{}
}

func (t *Text) Render() string {
	lines := t.lines()
	rows := t.rows
	if rows <= 0 {
		rows = len(lines)
	}
	end := t.offset + rows
	if end > len(lines) {
		end = len(lines)
	}
	var b []byte
	for _, line := range lines[t.offset:end] {
		b = append(b, line...)
		b = append(b, '\n')
	}
	return string(b)
}

// LineCount reports display lines at the current width.
func (t *Text) LineCount() int { return len(t.lines()) }
