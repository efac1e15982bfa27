package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glabrego/burrow/internal/gopher"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "burrow.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_SaveAndListHistory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveHistory(ctx, "Lawn", "gopher://bitreich.org/1/lawn"); err != nil {
		t.Fatalf("SaveHistory returned error: %v", err)
	}
	if err := repo.SaveHistory(ctx, "Floodgap", "gopher://gopher.floodgap.com/1/"); err != nil {
		t.Fatalf("SaveHistory returned error: %v", err)
	}

	visits, err := repo.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	if visits[0].Title != "Floodgap" {
		t.Fatalf("expected newest first, got %q", visits[0].Title)
	}
}

func TestRepository_SaveHistory_CollapsesReloads(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.SaveHistory(ctx, "Lawn", "gopher://bitreich.org/1/lawn"); err != nil {
			t.Fatalf("SaveHistory returned error: %v", err)
		}
	}
	visits, err := repo.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(visits) != 1 {
		t.Fatalf("reloads should collapse, got %d visits", len(visits))
	}
}

func TestRepository_SaveBookmark_Upserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveBookmark(ctx, "Original", "gopher://sdf.org/1/"); err != nil {
		t.Fatalf("SaveBookmark returned error: %v", err)
	}
	if err := repo.SaveBookmark(ctx, "Updated", "gopher://sdf.org/1/"); err != nil {
		t.Fatalf("second SaveBookmark returned error: %v", err)
	}

	marks, err := repo.ListBookmarks(ctx)
	if err != nil {
		t.Fatalf("ListBookmarks returned error: %v", err)
	}
	if len(marks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(marks))
	}
	if marks[0].Title != "Updated" {
		t.Fatalf("expected updated title, got %q", marks[0].Title)
	}
}

func TestAsMenu(t *testing.T) {
	visits := []Visit{
		{Title: "Lawn", URL: "gopher://bitreich.org/1/lawn"},
		{Title: "Notes", URL: "gopher://sdf.org:7070/0/notes.txt"},
	}
	raw := AsMenu("history", visits, "nothing yet")

	lines := gopher.ParseMenu(raw)
	var links []gopher.MenuLine
	for _, line := range lines {
		if line.IsLink() {
			links = append(links, line)
		}
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Type != gopher.Menu || links[0].Host != "bitreich.org" || links[0].Selector != "/lawn" {
		t.Fatalf("unexpected first link: %+v", links[0])
	}
	if links[1].Type != gopher.Text || links[1].Port != 7070 {
		t.Fatalf("unexpected second link: %+v", links[1])
	}
}

func TestAsMenu_Empty(t *testing.T) {
	raw := AsMenu("bookmarks", nil, "no bookmarks yet")
	if !strings.Contains(raw, "ino bookmarks yet") {
		t.Fatalf("empty list should show placeholder, got %q", raw)
	}
	for _, line := range gopher.ParseMenu(raw) {
		if line.IsLink() {
			t.Fatalf("empty menu should have no links: %+v", line)
		}
	}
}
