package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/burrow/internal/gopher"
)

// Theme holds every style the client renders with. Menu lines are
// colored by item type; the rest is chrome.
type Theme struct {
	Info     lipgloss.Style
	TextFile lipgloss.Style
	MenuLink lipgloss.Style
	Search   lipgloss.Style
	Telnet   lipgloss.Style
	HTML     lipgloss.Style
	Download lipgloss.Style
	ErrorTyp lipgloss.Style
	Unknown  lipgloss.Style

	ActiveLine  lipgloss.Style
	StatusError lipgloss.Style
	StatusText  lipgloss.Style
	PromptLabel lipgloss.Style
	BadgeTLS    lipgloss.Style
	BadgeTor    lipgloss.Style
}

// Default is the standard ANSI palette. Plain terminal colors on
// purpose: gopherspace is rendered on everything from xterm to a
// serial console.
func Default() Theme {
	return Theme{
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		TextFile: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		MenuLink: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Search:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Telnet:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Underline(true),
		HTML:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Download: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Underline(true),
		ErrorTyp: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Unknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		ActiveLine:  lipgloss.NewStyle().Reverse(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		StatusText:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		PromptLabel: lipgloss.NewStyle().Bold(true),
		BadgeTLS:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")),
		BadgeTor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("5")),
	}
}

// StyleFor returns the style for a menu line's item type.
func (t Theme) StyleFor(typ gopher.ItemType) lipgloss.Style {
	switch {
	case typ == gopher.Info:
		return t.Info
	case typ == gopher.Text:
		return t.TextFile
	case typ == gopher.Menu:
		return t.MenuLink
	case typ == gopher.Search:
		return t.Search
	case typ == gopher.Telnet:
		return t.Telnet
	case typ == gopher.HTML:
		return t.HTML
	case typ == gopher.Error:
		return t.ErrorTyp
	case typ.IsDownload():
		return t.Download
	default:
		return t.Unknown
	}
}

// RenderActiveLine highlights the focused menu line.
func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
