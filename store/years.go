package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/lifeplan/schema"
)

// Year is a planner year.
type Year struct {
	ID   int `json:"id"`
	Year int `json:"year"`
}

// ListYears returns every year, newest first.
func (s *Store) ListYears(ctx context.Context) ([]Year, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, year FROM years ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	years, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Year])
	if err != nil {
		return nil, fmt.Errorf("scan years: %w", err)
	}
	return years, nil
}

// EnsureYear returns the id of year, creating a bare row when it is missing.
func (s *Store) EnsureYear(ctx context.Context, year int) (int, error) {
	return ensureYear(ctx, s.pool, year)
}

// AddYear creates a year and seeds its review questions, month rows and
// default habit week in one transaction.
func (s *Store) AddYear(ctx context.Context, year int) (Year, error) {
	if err := validYear(year); err != nil {
		return Year{}, err
	}

	created := Year{Year: year}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO years (year) VALUES ($1) RETURNING id`, year).Scan(&created.ID)
		if isUniqueViolation(err) {
			return fmt.Errorf("year %d: %w", year, ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("insert year: %w", err)
		}
		return s.seedYear(ctx, tx, created.ID, year)
	})
	if err != nil {
		return Year{}, err
	}
	log.Infof("created year %d", year)
	return created, nil
}

func (s *Store) seedYear(ctx context.Context, tx pgx.Tx, id, year int) error {
	review := make([][]any, 0, len(s.defaults.ReviewQuestions))
	for _, q := range s.defaults.ReviewQuestions {
		review = append(review, []any{id, q, ""})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{schema.Review}, []string{"year_id", "question", "answer"}, pgx.CopyFromRows(review)); err != nil {
		return fmt.Errorf("seed review: %w", err)
	}

	presets := s.defaults.Months()
	months := make([][]any, 0, len(presets))
	for _, m := range presets {
		months = append(months, []any{id, m.Name, m.IconPath, m.Banner, m.ReadingLink, m.MonthIconPath})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{schema.Months},
		[]string{"year_id", "month_name", "icon_path", "banner", "reading_link", "month_icon_path"},
		pgx.CopyFromRows(months)); err != nil {
		return fmt.Errorf("seed months: %w", err)
	}

	week := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var habits [][]any
	for _, h := range s.defaults.Habits {
		for _, task := range h.Tasks {
			habits = append(habits, []any{id, week, h.Day, task, false})
		}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{schema.HabitTracker},
		[]string{"year_id", "week_starting", "day_of_week", "task", "completed"},
		pgx.CopyFromRows(habits)); err != nil {
		return fmt.Errorf("seed habit tracker: %w", err)
	}
	return nil
}

// DeleteYear removes a year; every year-scoped row goes with it.
func (s *Store) DeleteYear(ctx context.Context, year int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM years WHERE year = $1`, year)
	if err != nil {
		return fmt.Errorf("delete year: %w", err)
	}
	if err := expectOne(tag, fmt.Sprintf("year %d", year)); err != nil {
		return err
	}
	log.Infof("deleted year %d", year)
	return nil
}

// RenameYear changes oldYear into newYear and moves every dated row of the
// year by the same number of years, keeping month and day.
func (s *Store) RenameYear(ctx context.Context, oldYear, newYear int) error {
	if err := validYear(newYear); err != nil {
		return err
	}
	if oldYear == newYear {
		_, err := yearID(ctx, s.pool, oldYear)
		return err
	}

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := yearID(ctx, tx, oldYear)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE years SET year = $1 WHERE id = $2`, newYear, id)
		if isUniqueViolation(err) {
			return fmt.Errorf("year %d: %w", newYear, ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("rename year: %w", err)
		}

		delta := newYear - oldYear
		for table, col := range schema.YearScoped() {
			if col == "" {
				continue
			}
			sql := fmt.Sprintf(`UPDATE %s SET %s = (%s + make_interval(years => $1))::date WHERE year_id = $2 AND %s IS NOT NULL`,
				table, col, col, col)
			if _, err := tx.Exec(ctx, sql, delta, id); err != nil {
				return fmt.Errorf("shift %s.%s: %w", table, col, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("renamed year %d to %d", oldYear, newYear)
	return nil
}
