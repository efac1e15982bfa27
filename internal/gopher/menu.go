package gopher

import (
	"strconv"
	"strings"
)

// MenuLine is one parsed line of a menu response. Info lines and
// unparseable text carry only display text.
type MenuLine struct {
	Type     ItemType
	Text     string
	Selector string
	Host     string
	Port     int
}

// IsLink reports whether the line has a destination. Info lines are
// display-only; every other parsed line carries one.
func (l MenuLine) IsLink() bool {
	return !l.Type.IsInfo()
}

// URL returns the destination of a link line in textual form.
// Selectors of the form URL:scheme://... address non-Gopher resources
// and are returned verbatim.
func (l MenuLine) URL() string {
	if strings.HasPrefix(l.Selector, "URL:") {
		return strings.TrimPrefix(l.Selector, "URL:")
	}
	port := l.Port
	if port == 0 {
		port = DefaultPort
	}
	return URL{Host: l.Host, Port: port, Type: l.Type, Selector: l.Selector}.String()
}

// ParseMenu decodes a raw menu response into ordered lines. Lines are
// separated by CR, LF, or CRLF and tab-separated into
// {typechar}{text}, selector, host, port. Parsing is line-local: a
// malformed line folds into an Info line and never stops the rest of
// the menu from decoding. ParseMenu accepts any input, including
// empty input and menus lacking the trailing "." terminator.
func ParseMenu(raw string) []MenuLine {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []MenuLine
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, parseMenuLine(line))
	}
	return lines
}

func parseMenuLine(line string) MenuLine {
	if line == "." {
		// Menu terminator. Kept as a blank info line so display
		// order and line count stay faithful to the response.
		return MenuLine{Type: Info}
	}

	parts := strings.Split(line, "\t")
	typ, ok := ParseItemType(rune(line[0]))
	if !ok || len(parts) < 2 {
		// No tab or unknown type character: fold the raw text into
		// an informational line.
		text := line
		if ok && typ == Info {
			text = parts[0][1:]
		}
		return MenuLine{Type: Info, Text: text}
	}

	ml := MenuLine{
		Type: typ,
		Text: parts[0][1:],
		Port: DefaultPort,
	}
	ml.Selector = parts[1]
	if len(parts) > 2 {
		ml.Host = parts[2]
	}
	if len(parts) > 3 {
		if p, err := strconv.Atoi(strings.TrimSpace(parts[3])); err == nil && p > 0 {
			ml.Port = p
		}
	}
	return ml
}
