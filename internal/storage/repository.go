package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/burrow/internal/gopher"
)

// Repository persists visit history and bookmarks in a local sqlite
// database.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS history (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  url TEXT NOT NULL,
  visited_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bookmarks (
  url TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveHistory appends one visit. Consecutive reloads of the same URL
// collapse into a single entry.
func (r *Repository) SaveHistory(ctx context.Context, title, url string) error {
	var lastURL string
	err := r.db.QueryRowContext(ctx,
		`SELECT url FROM history ORDER BY id DESC LIMIT 1`).Scan(&lastURL)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("query last visit: %w", err)
	}
	if lastURL == url {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO history (title, url, visited_at) VALUES (?, ?, ?)`,
		title, url, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save visit: %w", err)
	}
	return nil
}

// SaveBookmark stores a bookmark, updating the title if the URL is
// already bookmarked.
func (r *Repository) SaveBookmark(ctx context.Context, title, url string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bookmarks (url, title, created_at) VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET title=excluded.title
`, url, title, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

// Visit is one history or bookmark row.
type Visit struct {
	Title string
	URL   string
}

// ListHistory returns recent visits, newest first.
func (r *Repository) ListHistory(ctx context.Context, limit int) ([]Visit, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT title, url FROM history ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// ListBookmarks returns all bookmarks, newest first.
func (r *Repository) ListBookmarks(ctx context.Context) ([]Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT title, url FROM bookmarks ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

func scanVisits(rows *sql.Rows) ([]Visit, error) {
	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.Title, &v.URL); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return visits, nil
}

// AsMenu renders a visit list as a raw gopher menu payload so the
// regular menu view can display it. Visits whose URL does not parse
// as a gopher URL are kept as plain info lines.
func AsMenu(heading string, visits []Visit, empty string) string {
	var b strings.Builder
	b.WriteString("i\r\ni     " + heading + "\r\ni\r\n")
	if len(visits) == 0 {
		b.WriteString("i" + empty + "\r\n")
	}
	for _, v := range visits {
		u := gopher.ParseURL(v.URL)
		title := v.Title
		if title == "" {
			title = v.URL
		}
		if u.Host == "" {
			fmt.Fprintf(&b, "i%s\r\n", title)
			continue
		}
		fmt.Fprintf(&b, "%c%s\t%s\t%s\t%d\r\n", u.Type.Rune(), title, u.Selector, u.Host, u.Port)
	}
	b.WriteString(".\r\n")
	return b.String()
}
