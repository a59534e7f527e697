package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GratitudeEntry is one diary entry.
type GratitudeEntry struct {
	Date  string `json:"date"`
	Entry string `json:"entry"`
}

func (s *Store) ListGratitude(ctx context.Context, year int) ([]GratitudeEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT g.entry_date, COALESCE(g.content, '')
		FROM gratitude_diary g JOIN years y ON y.id = g.year_id
		WHERE y.year = $1 AND g.entry_date IS NOT NULL
		ORDER BY g.entry_date, g.id`, year)
	if err != nil {
		return nil, fmt.Errorf("list gratitude diary: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (GratitudeEntry, error) {
		var e GratitudeEntry
		var d time.Time
		err := row.Scan(&d, &e.Entry)
		e.Date = formatDate(d)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan gratitude diary: %w", err)
	}
	return entries, nil
}

func (s *Store) AddGratitude(ctx context.Context, year int, date time.Time, entry string) error {
	entry, err := required("entry", entry)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO gratitude_diary (year_id, entry_date, content) VALUES ($1, $2, $3)`, id, date, entry); err != nil {
		return fmt.Errorf("add gratitude entry: %w", err)
	}
	return nil
}

// UpsertGratitude replaces the entry of date, inserting it when missing.
func (s *Store) UpsertGratitude(ctx context.Context, year int, date time.Time, entry string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := yearID(ctx, tx, year)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE gratitude_diary SET content = $1 WHERE year_id = $2 AND entry_date = $3`, entry, id, date)
		if err != nil {
			return fmt.Errorf("update gratitude entry: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO gratitude_diary (year_id, entry_date, content) VALUES ($1, $2, $3)`, id, date, entry); err != nil {
			return fmt.Errorf("insert gratitude entry: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteGratitude(ctx context.Context, year int, date time.Time) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM gratitude_diary WHERE year_id = $1 AND entry_date = $2`, id, date)
	if err != nil {
		return fmt.Errorf("delete gratitude entry: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("gratitude entry on %s", formatDate(date)))
}
