package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/glabrego/burrow/internal/app"
	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/tui/actions"
	"github.com/glabrego/burrow/internal/tui/nav"
	"github.com/glabrego/burrow/internal/tui/platform"
	"github.com/glabrego/burrow/internal/tui/theme"
	"github.com/glabrego/burrow/internal/tui/view"
)

// PageService resolves internal pages and records visits and
// bookmarks.
type PageService interface {
	Resolve(ctx context.Context, u gopher.URL) (app.Page, bool, error)
	RecordVisit(ctx context.Context, title, url string) error
	Bookmark(ctx context.Context, title, url string) error
}

type bookmarkSavedMsg struct {
	title string
}

type bookmarkErrorMsg struct {
	err error
}

type copyURLResultMsg struct {
	err error
}

type openBrowserResultMsg struct {
	err error
}

type telnetDoneMsg struct {
	err error
}

type clearStatusMsg struct {
	id int
}

type startDownloadMsg struct {
	url string
}

type Model struct {
	fetcher actions.Fetcher
	pages   PageService
	stack   *nav.Stack
	th      theme.Theme

	downloadDir string
	wideDefault bool
	emoji       bool

	width  int
	height int

	loading    bool
	loadingURL string
	spin       spinner.Model
	replacing  bool

	prompting  bool
	prompt     textinput.Model
	promptThen func(string) actions.Action

	confirming  bool
	confirmText string
	confirmYes  tea.Cmd

	overlay string

	status    string
	statusErr bool
	statusID  int

	openBrowserFn func(string) error
	copyFn        func(string) error
}

type ModelParams struct {
	Fetcher     actions.Fetcher
	Pages       PageService
	Theme       theme.Theme
	DownloadDir string
	Wide        bool
	Emoji       bool
}

func NewModel(params ModelParams) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.CharLimit = 512

	return Model{
		fetcher:       params.Fetcher,
		pages:         params.Pages,
		stack:         nav.New(),
		th:            params.Theme,
		downloadDir:   params.DownloadDir,
		wideDefault:   params.Wide,
		emoji:         params.Emoji,
		spin:          sp,
		prompt:        input,
		openBrowserFn: platform.OpenInBrowser,
		copyFn:        platform.CopyToClipboard,
	}
}

// PushPage seeds the stack before the program starts, so the first
// frame already has content.
func (m *Model) PushPage(v view.View) {
	v.SetWide(m.wideDefault)
	m.stack.Push(v)
}

func (m Model) Init() tea.Cmd {
	return nil
}

// contentRows is the page area height; the bottom row is the status
// bar.
func (m Model) contentRows() int {
	if m.height <= 1 {
		return 0
	}
	return m.height - 1
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if cur, ok := m.stack.Current(); ok {
			cur.Resize(m.width, m.contentRows())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case actions.FetchedMsg:
		return m.pageFetched(msg)

	case actions.FetchErrorMsg:
		m.loading = false
		m.replacing = false
		return m.showError(fmt.Errorf("%s: %w", msg.URL, msg.Err))

	case actions.DownloadedMsg:
		m.loading = false
		return m.showStatus(fmt.Sprintf("Saved %s (%s)", msg.Path, humanize.Bytes(uint64(msg.Bytes))))

	case actions.DownloadErrorMsg:
		m.loading = false
		return m.showError(msg.Err)

	case bookmarkSavedMsg:
		return m.showStatus("Bookmarked " + msg.title)

	case bookmarkErrorMsg:
		return m.showError(msg.err)

	case copyURLResultMsg:
		if msg.err != nil {
			return m.showError(msg.err)
		}
		return m.showStatus("Copied URL to clipboard")

	case openBrowserResultMsg:
		if msg.err != nil {
			return m.showError(msg.err)
		}
		return m.showStatus("Opened in browser")

	case telnetDoneMsg:
		if msg.err != nil {
			return m.showError(fmt.Errorf("telnet: %w", msg.err))
		}
		return m.showStatus("Telnet session ended")

	case startDownloadMsg:
		m.loading = true
		m.loadingURL = msg.url
		return m, tea.Batch(m.spin.Tick, actions.DownloadCmd(m.fetcher, msg.url, m.downloadDir))

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.prompting {
		return m.handlePromptKey(key)
	}
	if m.confirming {
		return m.handleConfirmKey(key)
	}
	if m.overlay != "" {
		m.overlay = ""
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	cur, ok := m.stack.Current()
	if !ok {
		return m.globalKey(key)
	}
	act := cur.Respond(key)
	if kp, isKey := act.(actions.Keypress); isKey {
		return m.globalKey(kp.Key)
	}
	return m.dispatch(act)
}

func (m Model) handlePromptKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		value := m.prompt.Value()
		then := m.promptThen
		m.prompting = false
		m.promptThen = nil
		m.prompt.Reset()
		if then == nil || strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m.dispatch(then(value))
	case "esc":
		m.prompting = false
		m.promptThen = nil
		m.prompt.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(key)
	return m, cmd
}

func (m Model) handleConfirmKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "Y", "enter":
		yes := m.confirmYes
		m.confirming = false
		m.confirmYes = nil
		return m, yes
	case "n", "N", "esc":
		m.confirming = false
		m.confirmYes = nil
		return m, nil
	}
	return m, nil
}

// globalKey handles the shortcuts that work on every page.
func (m Model) globalKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "left", "ctrl+b":
		if v, ok := m.stack.Back(); ok {
			v.Resize(m.width, m.contentRows())
		}
		return m, nil
	case "right", "ctrl+f":
		if v, ok := m.stack.Forward(); ok {
			v.Resize(m.width, m.contentRows())
		}
		return m, nil
	case "g", "ctrl+g":
		return m.dispatch(actions.Prompt{
			Label: "Go to URL: ",
			Then: func(raw string) actions.Action {
				return actions.Open{URL: strings.TrimSpace(raw)}
			},
		})
	case "h":
		return m.dispatch(actions.Open{URL: "gopher://" + gopher.InternalHost + "/1/home"})
	case "b", "ctrl+o":
		return m.dispatch(actions.Open{URL: "gopher://" + gopher.InternalHost + "/1/bookmarks"})
	case "s", "ctrl+h":
		return m.dispatch(actions.Open{URL: "gopher://" + gopher.InternalHost + "/1/history"})
	case "a":
		return m.bookmarkCurrent()
	case "u", "ctrl+u":
		if cur, ok := m.stack.Current(); ok {
			return m.showStatus(cur.URL())
		}
		return m, nil
	case "y", "ctrl+y":
		if cur, ok := m.stack.Current(); ok {
			return m, copyURLCmd(m.copyFn, cur.URL())
		}
		return m, nil
	case "r", "ctrl+r":
		return m.openRawSource()
	case "ctrl+l":
		return m.reload()
	case "w", "ctrl+w":
		if cur, ok := m.stack.Current(); ok {
			cur.SetWide(!cur.Wide())
		}
		return m, nil
	case "e":
		m.emoji = !m.emoji
		return m, nil
	case "?":
		return m.dispatch(actions.Draw{Text: shortcutOverlay})
	case "ctrl+z":
		return m, tea.Suspend
	case "q", "ctrl+q", "esc":
		return m.confirm("Quit burrow?", tea.Quit), nil
	}
	return m, nil
}

func (m Model) dispatch(act actions.Action) (tea.Model, tea.Cmd) {
	switch act := act.(type) {
	case nil, actions.NoOp:
		return m, nil
	case actions.Redraw:
		return m, nil
	case actions.Open:
		return m.open(act)
	case actions.Prompt:
		m.prompting = true
		m.prompt.Reset()
		m.prompt.Prompt = act.Label
		m.prompt.Focus()
		m.promptThen = act.Then
		return m, textinput.Blink
	case actions.Status:
		return m.showStatus(act.Text)
	case actions.Draw:
		m.overlay = act.Text
		return m, nil
	case actions.Error:
		return m.showError(act.Err)
	case actions.Keypress:
		return m.globalKey(act.Key)
	case actions.List:
		cur := m
		var cmds []tea.Cmd
		for _, sub := range act.Actions {
			prevID := cur.statusID
			model, cmd := cur.dispatch(sub)
			cur = model.(Model)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			// A failed member skips its remaining siblings. An error
			// already on the status line before the list began does
			// not count against the member.
			if cur.statusErr && cur.statusID != prevID {
				break
			}
		}
		return cur, tea.Batch(cmds...)
	}
	return m, nil
}

// open routes a URL: telnet hands over the terminal, any other
// non-gopher scheme goes to the system opener after confirmation,
// internal pages are served locally, download types stream to disk
// after confirmation, everything else is fetched over the wire.
func (m Model) open(act actions.Open) (tea.Model, tea.Cmd) {
	// Re-opening the page already on screen does nothing.
	if cur, ok := m.stack.Current(); ok && act.URL == cur.URL() {
		return m, nil
	}

	if strings.HasPrefix(act.URL, "telnet://") {
		t := gopher.ParseURL(act.URL)
		return m, tea.ExecProcess(platform.TelnetCommand(t.Host, t.Port), func(err error) tea.Msg {
			return telnetDoneMsg{err: err}
		})
	}

	// Anything with a scheme other than gopher leaves for the system
	// opener; only gopher URLs may omit the scheme.
	if strings.Contains(act.URL, "://") && !strings.HasPrefix(act.URL, "gopher://") {
		target := act.URL
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			validURL, err := platform.ValidateWebURL(target)
			if err != nil {
				return m.showError(err)
			}
			target = validURL
		}
		return m.confirm("Open "+target+" in browser?", openBrowserCmd(m.openBrowserFn, target)), nil
	}

	u := gopher.ParseURL(act.URL)
	if u.IsInternal() {
		return m.openInternal(act.Title, u)
	}

	switch {
	case u.Type.IsTelnet():
		return m, tea.ExecProcess(platform.TelnetCommand(u.Host, u.Port), func(err error) tea.Msg {
			return telnetDoneMsg{err: err}
		})
	case u.Type.IsDownload():
		url := u.String()
		return m.confirm("Download "+url+"?", func() tea.Msg {
			return startDownloadMsg{url: url}
		}), nil
	case !u.Type.IsSupported():
		return m.showError(fmt.Errorf("%s: %w", u.String(), gopher.ErrUnsupportedType))
	default:
		m.loading = true
		m.loadingURL = u.String()
		return m, tea.Batch(m.spin.Tick, actions.FetchCmd(m.fetcher, act.Title, u.String()))
	}
}

// confirm arms the y/n modal; yes runs only on an explicit confirm,
// declining discards it without side effects.
func (m Model) confirm(text string, yes tea.Cmd) Model {
	m.confirming = true
	m.confirmText = text
	m.confirmYes = yes
	return m
}

func (m Model) openInternal(title string, u gopher.URL) (tea.Model, tea.Cmd) {
	page, _, err := m.pages.Resolve(context.Background(), u)
	if err != nil {
		return m.showError(err)
	}
	if title == "" {
		title = page.Title
	}
	v := view.NewMenu(title, u.String(), page.Raw, gopher.TransportPlain, m.th)
	return m.showPage(v)
}

func (m Model) pageFetched(msg actions.FetchedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	u := gopher.ParseURL(msg.URL)
	var v view.View
	switch u.Type {
	case gopher.Menu, gopher.Search:
		v = view.NewMenu(msg.Title, msg.URL, msg.Res.Body, msg.Res.Transport, m.th)
	case gopher.Text, gopher.HTML:
		v = view.NewText(msg.Title, msg.URL, msg.Res.Body, msg.Res.Transport)
	default:
		m.replacing = false
		return m.showError(fmt.Errorf("%s: %w", msg.URL, gopher.ErrUnsupportedType))
	}

	model, cmd := m.showPage(v)
	return model, tea.Batch(cmd, actions.SaveHistoryCmd(historyAdapter{m.pages}, msg.Title, msg.URL))
}

func (m Model) showPage(v view.View) (tea.Model, tea.Cmd) {
	v.SetWide(m.wideDefault)
	v.Resize(m.width, m.contentRows())
	if m.replacing {
		m.replacing = false
		m.stack.Replace(v)
	} else {
		m.stack.Push(v)
	}
	m.status = ""
	m.statusErr = false
	return m, nil
}

func (m Model) bookmarkCurrent() (tea.Model, tea.Cmd) {
	cur, ok := m.stack.Current()
	if !ok {
		return m, nil
	}
	return m, bookmarkCmd(m.pages, cur.Title(), cur.URL())
}

func (m Model) openRawSource() (tea.Model, tea.Cmd) {
	cur, ok := m.stack.Current()
	if !ok {
		return m, nil
	}
	if _, isText := cur.(*view.Text); isText && strings.HasSuffix(cur.Title(), " (raw)") {
		return m, nil
	}
	raw := view.NewText(cur.Title()+" (raw)", cur.URL(), cur.Raw(), gopher.TransportPlain)
	raw.SetWide(true)
	raw.Resize(m.width, m.contentRows())
	m.stack.Push(raw)
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	cur, ok := m.stack.Current()
	if !ok {
		return m, nil
	}
	u := gopher.ParseURL(cur.URL())
	if u.IsInternal() {
		page, _, err := m.pages.Resolve(context.Background(), u)
		if err != nil {
			return m.showError(err)
		}
		v := view.NewMenu(cur.Title(), u.String(), page.Raw, gopher.TransportPlain, m.th)
		m.replacing = true
		return m.showPage(v)
	}
	m.loading = true
	m.loadingURL = u.String()
	m.replacing = true
	return m, tea.Batch(m.spin.Tick, actions.FetchCmd(m.fetcher, cur.Title(), u.String()))
}

func (m Model) showStatus(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = false
	m.statusID++
	return m, clearStatusCmd(m.statusID, 4*time.Second)
}

func (m Model) showError(err error) (tea.Model, tea.Cmd) {
	m.status = err.Error()
	m.statusErr = true
	m.statusID++
	return m, clearStatusCmd(m.statusID, 6*time.Second)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func bookmarkCmd(pages PageService, title, url string) tea.Cmd {
	if pages == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pages.Bookmark(ctx, title, url); err != nil {
			return bookmarkErrorMsg{err: err}
		}
		if title == "" {
			title = url
		}
		return bookmarkSavedMsg{title: title}
	}
}

func copyURLCmd(copyFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if copyFn == nil {
			return copyURLResultMsg{err: fmt.Errorf("clipboard unavailable")}
		}
		return copyURLResultMsg{err: copyFn(url)}
	}
}

func openBrowserCmd(openFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if openFn == nil {
			return openBrowserResultMsg{err: fmt.Errorf("browser unavailable")}
		}
		return openBrowserResultMsg{err: openFn(url)}
	}
}

// historyAdapter lets the page service act as the history sink for
// fetch commands.
type historyAdapter struct {
	pages PageService
}

func (h historyAdapter) SaveHistory(ctx context.Context, title, url string) error {
	if h.pages == nil {
		return nil
	}
	return h.pages.RecordVisit(ctx, title, url)
}

func (m Model) View() string {
	var b strings.Builder

	if m.overlay != "" {
		b.WriteString(m.overlay)
		b.WriteString("\n")
		b.WriteString(m.statusBar())
		return b.String()
	}

	if cur, ok := m.stack.Current(); ok {
		b.WriteString(cur.Render())
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) statusBar() string {
	switch {
	case m.prompting:
		return m.th.PromptLabel.Render(m.prompt.View())
	case m.confirming:
		return m.th.PromptLabel.Render(m.confirmText + " [y/n]")
	case m.loading:
		return m.spin.View() + " " + m.th.StatusText.Render(m.loadingURL)
	case m.status != "":
		if m.statusErr {
			return m.th.StatusError.Render(m.status)
		}
		return m.th.StatusText.Render(m.status)
	}

	cur, ok := m.stack.Current()
	if !ok {
		return ""
	}
	line := cur.URL()
	if badge := m.transportBadge(cur); badge != "" {
		line += "  " + badge
	}
	return m.th.StatusText.Render(line)
}

func (m Model) transportBadge(v view.View) string {
	switch {
	case v.TLS():
		if m.emoji {
			return "\U0001F510"
		}
		return m.th.BadgeTLS.Render(" TLS ")
	case v.Tor():
		if m.emoji {
			return "\U0001F9C5"
		}
		return m.th.BadgeTor.Render(" TOR ")
	}
	return ""
}

const shortcutOverlay = `
   keyboard shortcuts

   arrows        move / back / forward
   enter         open selection
   g             go to URL
   u / y         show / copy current URL
   r             view raw source
   w             toggle wide mode
   a / b         add / show bookmarks
   s             show history
   h             go home
   q             quit

   press any key to continue
`
