// Package app resolves pages: built-in pages served locally, and the
// dynamic history/bookmark menus assembled from storage.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/helppage"
	"github.com/glabrego/burrow/internal/storage"
)

// Repository is the slice of storage the page service needs.
type Repository interface {
	SaveHistory(ctx context.Context, title, url string) error
	SaveBookmark(ctx context.Context, title, url string) error
	ListHistory(ctx context.Context, limit int) ([]storage.Visit, error)
	ListBookmarks(ctx context.Context) ([]storage.Visit, error)
}

// Page is a resolved internal page, ready for the menu view.
type Page struct {
	Title string
	Raw   string
}

// Service serves everything under the reserved internal host.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// historyLimit caps the history menu; older visits stay in the
// database but are not shown.
const historyLimit = 100

// Resolve serves an internal URL. It returns false when the URL is
// not internal; unknown internal selectors are an error page.
func (s *Service) Resolve(ctx context.Context, u gopher.URL) (Page, bool, error) {
	if !u.IsInternal() {
		return Page{}, false, nil
	}

	switch strings.Trim(u.Selector, "/") {
	case "history":
		visits, err := s.listHistory(ctx)
		if err != nil {
			return Page{}, true, fmt.Errorf("load history: %w", err)
		}
		return Page{Title: "History", Raw: storage.AsMenu("history", visits, "no history yet")}, true, nil
	case "bookmarks":
		visits, err := s.listBookmarks(ctx)
		if err != nil {
			return Page{}, true, fmt.Errorf("load bookmarks: %w", err)
		}
		return Page{Title: "Bookmarks", Raw: storage.AsMenu("bookmarks", visits, "no bookmarks yet")}, true, nil
	}

	if title, raw, ok := helppage.Lookup(u.Selector); ok {
		return Page{Title: title, Raw: raw}, true, nil
	}
	return Page{}, true, fmt.Errorf("no such page: %s", u.String())
}

func (s *Service) listHistory(ctx context.Context) ([]storage.Visit, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListHistory(ctx, historyLimit)
}

func (s *Service) listBookmarks(ctx context.Context) ([]storage.Visit, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListBookmarks(ctx)
}

// RecordVisit appends to history. Internal pages are not recorded.
func (s *Service) RecordVisit(ctx context.Context, title, url string) error {
	if s.repo == nil || gopher.ParseURL(url).IsInternal() {
		return nil
	}
	return s.repo.SaveHistory(ctx, title, url)
}

// Bookmark stores a bookmark for any page, internal ones included.
func (s *Service) Bookmark(ctx context.Context, title, url string) error {
	if s.repo == nil {
		return fmt.Errorf("bookmarks unavailable: no database")
	}
	return s.repo.SaveBookmark(ctx, title, url)
}
