package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Book is a reading-list entry with its authors.
type Book struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Language   string   `json:"language"`
	Status     string   `json:"status"`
	Link       string   `json:"link"`
	Series     string   `json:"series"`
	BannerPath string   `json:"banner_path"`
	IconPath   string   `json:"icon_path"`
	CoverPath  string   `json:"cover_path"`
}

func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.title,
		       COALESCE(array_agg(a.name::text ORDER BY a.id) FILTER (WHERE a.id IS NOT NULL), '{}'::text[]),
		       COALESCE(r.language, ''), COALESCE(r.status, ''), COALESCE(r.link, ''),
		       COALESCE(r.series, ''), COALESCE(r.banner_path, ''), COALESCE(r.icon_path, ''),
		       COALESCE(r.cover_path, '')
		FROM reading r
		LEFT JOIN reading_authors ra ON ra.reading_id = r.id
		LEFT JOIN authors a ON a.id = ra.author_id
		GROUP BY r.id
		ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Book, error) {
		var b Book
		err := row.Scan(&b.Title, &b.Authors, &b.Language, &b.Status, &b.Link,
			&b.Series, &b.BannerPath, &b.IconPath, &b.CoverPath)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}
	return books, nil
}

func cleanAuthors(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func linkAuthors(ctx context.Context, tx pgx.Tx, bookID int, authors []string) error {
	for _, name := range cleanAuthors(authors) {
		var authorID int
		err := tx.QueryRow(ctx, `
			INSERT INTO authors (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&authorID)
		if err != nil {
			return fmt.Errorf("find or create author %q: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO reading_authors (reading_id, author_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, bookID, authorID); err != nil {
			return fmt.Errorf("link author %q: %w", name, err)
		}
	}
	return nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// AddBook inserts a book, creating unknown authors, and returns its id.
func (s *Store) AddBook(ctx context.Context, b Book) (int, error) {
	title, err := required("title", b.Title)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO reading (title, language, status, link, series, banner_path, icon_path, cover_path)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			title, nullable(b.Language), nullable(b.Status), nullable(b.Link), nullable(b.Series),
			nullable(b.BannerPath), nullable(b.IconPath), nullable(NormalizeImagePath(b.CoverPath)),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		return linkAuthors(ctx, tx, id, b.Authors)
	})
	if err != nil {
		return 0, err
	}
	log.Debugf("added book %d %q", id, title)
	return id, nil
}

// UpdateBook replaces every field and the author set of the book titled oldTitle.
func (s *Store) UpdateBook(ctx context.Context, oldTitle string, b Book) error {
	title, err := required("title", b.Title)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx pgx.Tx) error {
		var id int
		err := tx.QueryRow(ctx, `SELECT id FROM reading WHERE title = $1 ORDER BY id LIMIT 1`, oldTitle).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("book %q: %w", oldTitle, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get book %q: %w", oldTitle, err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE reading SET title = $1, language = $2, status = $3, link = $4, series = $5,
			       banner_path = $6, icon_path = $7, cover_path = $8
			WHERE id = $9`,
			title, nullable(b.Language), nullable(b.Status), nullable(b.Link), nullable(b.Series),
			nullable(b.BannerPath), nullable(b.IconPath), nullable(NormalizeImagePath(b.CoverPath)), id)
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM reading_authors WHERE reading_id = $1`, id); err != nil {
			return fmt.Errorf("unlink authors: %w", err)
		}
		return linkAuthors(ctx, tx, id, b.Authors)
	})
}

func (s *Store) DeleteBook(ctx context.Context, title string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reading WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("book %q", title))
}
