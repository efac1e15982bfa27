// Package actions defines the intermediate representation produced by
// views in response to keystrokes, plus the tea.Cmd factories that
// perform network work off the UI goroutine. Reifying every
// input-driven effect as a value keeps all I/O in the controller's
// dispatch table, away from rendering and input parsing.
package actions

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/burrow/internal/gopher"
)

// Action is one effect requested by a view. It is constructed once
// per input event and consumed exactly once by the controller.
type Action interface {
	isAction()
}

// NoOp requests nothing.
type NoOp struct{}

// Redraw requests a full repaint of the focused view.
type Redraw struct{}

// Open requests navigation to a URL.
type Open struct {
	Title string
	URL   string
}

// Prompt requests a line of input from the user; Then turns the
// captured input into the follow-up Action. This is the only
// mechanism for multi-step interactions.
type Prompt struct {
	Label string
	Then  func(input string) Action
}

// Status sets the status line.
type Status struct {
	Text string
}

// Draw overlays raw text onto the next frame.
type Draw struct {
	Text string
}

// Error surfaces a recoverable error on the status line.
type Error struct {
	Err error
}

// Keypress hands a key back to the controller for app-level
// shortcuts the view does not consume.
type Keypress struct {
	Key tea.KeyMsg
}

// List requests several actions processed strictly in order. If one
// fails, the remaining members are skipped.
type List struct {
	Actions []Action
}

func (NoOp) isAction()     {}
func (Redraw) isAction()   {}
func (Open) isAction()     {}
func (Prompt) isAction()   {}
func (Status) isAction()   {}
func (Draw) isAction()     {}
func (Error) isAction()    {}
func (Keypress) isAction() {}
func (List) isAction()     {}

// Fetcher performs Gopher requests for the command factories.
type Fetcher interface {
	Fetch(ctx context.Context, u gopher.URL) (gopher.Response, error)
	Download(ctx context.Context, u gopher.URL, dir string) (string, int64, error)
}

// FetchedMsg carries a successful fetch back to the controller.
type FetchedMsg struct {
	Title string
	URL   string
	Res   gopher.Response
}

// FetchErrorMsg carries a failed fetch back to the controller.
type FetchErrorMsg struct {
	URL string
	Err error
}

// DownloadedMsg carries a completed download back to the controller.
type DownloadedMsg struct {
	Path  string
	Bytes int64
}

// DownloadErrorMsg carries a failed download back to the controller.
type DownloadErrorMsg struct {
	URL string
	Err error
}

const fetchTimeout = 30 * time.Second

// FetchCmd issues one blocking request on a worker goroutine. The
// result message is the one-shot completion signal the controller
// waits for; the spinner never gates it.
func FetchCmd(fetcher Fetcher, title, rawURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		res, err := fetcher.Fetch(ctx, gopher.ParseURL(rawURL))
		if err != nil {
			return FetchErrorMsg{URL: rawURL, Err: err}
		}
		return FetchedMsg{Title: title, URL: rawURL, Res: res}
	}
}

// DownloadCmd streams one resource to dir on a worker goroutine.
func DownloadCmd(fetcher Fetcher, rawURL, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		path, n, err := fetcher.Download(ctx, gopher.ParseURL(rawURL), dir)
		if err != nil {
			return DownloadErrorMsg{URL: rawURL, Err: err}
		}
		return DownloadedMsg{Path: path, Bytes: n}
	}
}

// HistoryWriter records visited URLs.
type HistoryWriter interface {
	SaveHistory(ctx context.Context, title, url string) error
}

// SaveHistoryCmd records a visit in the background. History is
// best-effort: failures are swallowed and never surfaced.
func SaveHistoryCmd(w HistoryWriter, title, url string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.SaveHistory(ctx, title, url)
		return nil
	}
}
