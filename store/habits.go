package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/lifeplan/schema"
)

// WeekPrefix starts every habit-week key.
const WeekPrefix = "Week starting "

// HabitTask is one habit on one weekday.
type HabitTask struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// HabitWeeks maps "Week starting YYYY-MM-DD" to weekday to habits.
type HabitWeeks map[string]map[string][]HabitTask

// WeekKey renders the habit-week key of start.
func WeekKey(start time.Time) string {
	return WeekPrefix + formatDate(start)
}

func (s *Store) HabitTracker(ctx context.Context, year int) (HabitWeeks, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT h.week_starting, h.day_of_week, h.task, COALESCE(h.completed, false)
		FROM habit_tracker h JOIN years y ON y.id = h.year_id
		WHERE y.year = $1 AND h.week_starting IS NOT NULL AND h.day_of_week IS NOT NULL AND h.task IS NOT NULL
		ORDER BY h.week_starting, h.id`, year)
	if err != nil {
		return nil, fmt.Errorf("get habit tracker: %w", err)
	}
	defer rows.Close()

	weeks := HabitWeeks{}
	for rows.Next() {
		var week time.Time
		var day string
		var t HabitTask
		if err := rows.Scan(&week, &day, &t.Task, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		key := WeekKey(week)
		if weeks[key] == nil {
			weeks[key] = map[string][]HabitTask{}
		}
		weeks[key][day] = append(weeks[key][day], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}
	return weeks, nil
}

// SetHabitWeekStart moves the year's habit week to start.
func (s *Store) SetHabitWeekStart(ctx context.Context, year int, start time.Time) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE habit_tracker SET week_starting = $1 WHERE year_id = $2`, start, id)
	if err != nil {
		return fmt.Errorf("update week start: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("habit week of %d", year))
}

func weekday(day string) (string, error) {
	d, ok := schema.CanonicalWeekday(strings.TrimSpace(day))
	if !ok {
		return "", fmt.Errorf("day %q is not a weekday: %w", day, ErrInvalid)
	}
	return d, nil
}

func (s *Store) SetHabitState(ctx context.Context, year int, day, task string, completed bool) error {
	d, err := weekday(day)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE habit_tracker SET completed = $1
		WHERE year_id = $2 AND day_of_week = $3 AND task = $4`, completed, id, d, task)
	if err != nil {
		return fmt.Errorf("update habit state: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("habit %q on %s", task, d))
}

// ResetHabitStates marks every habit of the year as not completed.
func (s *Store) ResetHabitStates(ctx context.Context, year int) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `UPDATE habit_tracker SET completed = false WHERE year_id = $1`, id); err != nil {
		return fmt.Errorf("reset habit states: %w", err)
	}
	return nil
}

// ReconcileTasks returns the tasks to insert (requested but not stored) and to
// delete (stored but not requested). Blank and repeated entries are ignored.
func ReconcileTasks(stored, requested []string) (add, remove []string) {
	have := map[string]bool{}
	for _, t := range stored {
		have[t] = true
	}
	want := map[string]bool{}
	for _, t := range requested {
		t = strings.TrimSpace(t)
		if t == "" || want[t] {
			continue
		}
		want[t] = true
		if !have[t] {
			add = append(add, t)
		}
	}
	removed := map[string]bool{}
	for _, t := range stored {
		if !want[t] && !removed[t] {
			removed[t] = true
			remove = append(remove, t)
		}
	}
	return add, remove
}

// EditHabitDay makes the habits of one weekday in the week starting at start
// equal to tasks. Existing habits keep their completed state.
func (s *Store) EditHabitDay(ctx context.Context, year int, start time.Time, day string, tasks []string) error {
	d, err := weekday(day)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := yearID(ctx, tx, year)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			SELECT task FROM habit_tracker
			WHERE year_id = $1 AND week_starting = $2 AND day_of_week = $3 AND task IS NOT NULL
			ORDER BY id`, id, start, d)
		if err != nil {
			return fmt.Errorf("load habits: %w", err)
		}
		stored, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("scan habits: %w", err)
		}

		add, remove := ReconcileTasks(stored, tasks)
		for _, t := range add {
			if _, err := tx.Exec(ctx, `
				INSERT INTO habit_tracker (year_id, week_starting, day_of_week, task, completed)
				VALUES ($1, $2, $3, $4, false)`, id, start, d, t); err != nil {
				return fmt.Errorf("add habit %q: %w", t, err)
			}
		}
		if len(remove) > 0 {
			if _, err := tx.Exec(ctx, `
				DELETE FROM habit_tracker
				WHERE year_id = $1 AND week_starting = $2 AND day_of_week = $3 AND task = ANY($4)`,
				id, start, d, remove); err != nil {
				return fmt.Errorf("remove habits: %w", err)
			}
		}
		log.Debugf("habits %d %s %s: +%d -%d", year, formatDate(start), d, len(add), len(remove))
		return nil
	})
}
