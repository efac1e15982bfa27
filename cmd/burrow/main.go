package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/burrow/internal/app"
	"github.com/glabrego/burrow/internal/config"
	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/storage"
	"github.com/glabrego/burrow/internal/tui"
	"github.com/glabrego/burrow/internal/tui/theme"
	"github.com/glabrego/burrow/internal/tui/view"
)

const issueURL = "https://github.com/glabrego/burrow/issues/new"

func main() {
	// A URL argument overrides the configured start page.
	if len(os.Args) > 1 {
		os.Setenv("BURROW_START_URL", os.Args[1])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var repo *storage.Repository
	pages := app.NewService(nil)
	if !cfg.NoDB {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		repo, err = storage.NewRepository(cfg.DBPath)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := repo.Init(ctx); err != nil {
			cancel()
			log.Fatalf("storage schema error: %v", err)
		}
		cancel()
		pages = app.NewService(repo)
	}

	client := gopher.NewClient(gopher.Options{
		TLS:       cfg.TLS,
		Tor:       cfg.Tor,
		ProxyAddr: cfg.ProxyAddr,
	})

	th := theme.Default()
	model := tui.NewModel(tui.ModelParams{
		Fetcher:     client,
		Pages:       pages,
		Theme:       th,
		DownloadDir: cfg.DownloadDir,
		Wide:        cfg.Wide,
		Emoji:       cfg.Emoji,
	})

	first, err := loadStartPage(client, pages, th, cfg.StartURL)
	if err != nil {
		log.Fatalf("cannot open %s: %v", cfg.StartURL, err)
	}
	model.PushPage(first)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v\nIf this looks like a bug, please report it: %s", err, issueURL)
	}
}

// loadStartPage fetches the start URL before the program takes over
// the terminal, so startup failures print a normal error instead of
// flashing an alternate screen.
func loadStartPage(client *gopher.Client, pages *app.Service, th theme.Theme, rawURL string) (view.View, error) {
	u := gopher.ParseURL(rawURL)

	if u.IsInternal() {
		page, _, err := pages.Resolve(context.Background(), u)
		if err != nil {
			return nil, err
		}
		return view.NewMenu(page.Title, u.String(), page.Raw, gopher.TransportPlain, th), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := client.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	switch u.Type {
	case gopher.Menu, gopher.Search:
		return view.NewMenu("", u.String(), res.Body, res.Transport, th), nil
	case gopher.Text, gopher.HTML:
		return view.NewText("", u.String(), res.Body, res.Transport), nil
	default:
		return nil, gopher.ErrUnsupportedType
	}
}
