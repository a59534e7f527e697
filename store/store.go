// Package store persists planner data in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.store")

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the PostgreSQL-backed planner repository.
type Store struct {
	pool     *pgxpool.Pool
	defaults loader.Defaults
}

// New creates a store. defaults seeds every year created through AddYear.
func New(pool *pgxpool.Pool, defaults loader.Defaults) *Store {
	return &Store{pool: pool, defaults: defaults}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, fn)
}

func yearID(ctx context.Context, db dbtx, year int) (int, error) {
	var id int
	err := db.QueryRow(ctx, `SELECT id FROM years WHERE year = $1`, year).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get year %d: %w", year, err)
	}
	return id, nil
}

// ensureYear returns the id of year, inserting a bare row when missing.
func ensureYear(ctx context.Context, db dbtx, year int) (int, error) {
	if err := validYear(year); err != nil {
		return 0, err
	}
	var id int
	err := db.QueryRow(ctx, `
		INSERT INTO years (year) VALUES ($1)
		ON CONFLICT (year) DO UPDATE SET year = EXCLUDED.year
		RETURNING id`, year).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensure year %d: %w", year, err)
	}
	return id, nil
}

func validYear(year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("year %d out of range: %w", year, ErrInvalid)
	}
	return nil
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%s cannot be empty: %w", field, ErrInvalid)
	}
	return v, nil
}

func expectOne(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", s, ErrInvalid)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
