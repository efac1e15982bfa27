// Package view implements the page kinds the client can display: a
// Menu of navigable lines and a Text page. Views own rendering and
// input interpretation only; everything with a side effect is
// returned as an actions.Action for the controller to perform.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/glabrego/burrow/internal/tui/actions"
)

// ScrollLines is how many lines paging keys jump by.
const ScrollLines = 15

// MaxCols is the wrap column for text pages. Longer lines wrap
// unless wide mode is on.
const MaxCols = 77

// View is the capability set shared by every page kind.
type View interface {
	// Respond turns one keystroke into an Action. It never performs
	// side effects itself.
	Respond(key tea.KeyMsg) actions.Action
	// Render returns the current viewport's content.
	Render() string
	URL() string
	Title() string
	// Raw returns the unmodified source payload.
	Raw() string
	TLS() bool
	Tor() bool
	Wide() bool
	SetWide(on bool)
	// Resize updates the viewport and invalidates cached layout.
	Resize(cols, rows int)
}

// wrapLine hard-wraps a single raw line to the given display width.
func wrapLine(line string, width int) []string {
	if width < 1 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var out []string
	var cur []rune
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
			w = 0
		}
		cur = append(cur, r)
		w += rw
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// clampOffset keeps a scroll offset inside [0, lines-rows].
func clampOffset(offset, lines, rows int) int {
	maxOffset := lines - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// splitLines splits a raw payload into lines on CR, LF, or CRLF.
func splitLines(raw string) []string {
	var out []string
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\n':
			out = append(out, raw[start:i])
			start = i + 1
		case '\r':
			out = append(out, raw[start:i])
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		out = append(out, raw[start:])
	}
	return out
}

func isPlainRune(key tea.KeyMsg) (rune, bool) {
	if key.Type != tea.KeyRunes || key.Alt || len(key.Runes) != 1 {
		return 0, false
	}
	return key.Runes[0], true
}
