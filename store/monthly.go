package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
)

// DiaryTask is a dated task in a month diary.
type DiaryTask struct {
	Date      string `json:"date"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// DayColour marks a calendar day with a colour.
type DayColour struct {
	ColourCode string `json:"colour_code"`
	Date       string `json:"date"`
}

// DayPopup attaches a note to a calendar day.
type DayPopup struct {
	PopupMessage string `json:"popup_message"`
	Date         string `json:"date"`
}

var colourCode = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// monthScope resolves the year id and canonical month name of a month-level call.
func monthScope(ctx context.Context, db dbtx, year int, monthName string) (int, string, error) {
	m, err := month(monthName)
	if err != nil {
		return 0, "", err
	}
	id, err := yearID(ctx, db, year)
	if err != nil {
		return 0, "", err
	}
	return id, m, nil
}

// Month goals.

func (s *Store) ListMonthGoals(ctx context.Context, year int, monthName string) ([]PlanTask, error) {
	m, err := month(monthName)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(p.task, ''), COALESCE(p.completed, false)
		FROM monthly_plans p JOIN years y ON y.id = p.year_id
		WHERE y.year = $1 AND p.month = $2
		ORDER BY p.id`, year, m)
	if err != nil {
		return nil, fmt.Errorf("list month goals: %w", err)
	}
	goals, err := pgx.CollectRows(rows, pgx.RowToStructByPos[PlanTask])
	if err != nil {
		return nil, fmt.Errorf("scan month goals: %w", err)
	}
	return goals, nil
}

func (s *Store) AddMonthGoal(ctx context.Context, year int, monthName, task string, completed bool) error {
	task, err := required("task", task)
	if err != nil {
		return err
	}
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO monthly_plans (year_id, month, task, completed) VALUES ($1, $2, $3, $4)`, id, m, task, completed); err != nil {
		return fmt.Errorf("add month goal: %w", err)
	}
	return nil
}

func (s *Store) SetMonthGoalState(ctx context.Context, year int, monthName, task string, done bool) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE monthly_plans SET completed = $1 WHERE year_id = $2 AND month = $3 AND task = $4`, done, id, m, task)
	if err != nil {
		return fmt.Errorf("update month goal: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("goal %q in %s", task, m))
}

func (s *Store) DeleteMonthGoal(ctx context.Context, year int, monthName, task string) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM monthly_plans WHERE year_id = $1 AND month = $2 AND task = $3`, id, m, task)
	if err != nil {
		return fmt.Errorf("delete month goal: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("goal %q in %s", task, m))
}

func (s *Store) RenameMonthGoal(ctx context.Context, year int, monthName, oldTask, newTask string) error {
	newTask, err := required("new_task", newTask)
	if err != nil {
		return err
	}
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE monthly_plans SET task = $1 WHERE year_id = $2 AND month = $3 AND task = $4`, newTask, id, m, oldTask)
	if err != nil {
		return fmt.Errorf("rename month goal: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("goal %q in %s", oldTask, m))
}

// Month diary.

func (s *Store) ListDiary(ctx context.Context, year int, monthName string) ([]DiaryTask, error) {
	m, err := month(monthName)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT d.date, COALESCE(d.task, ''), COALESCE(d.completed, false)
		FROM monthly_diary d JOIN years y ON y.id = d.year_id
		WHERE y.year = $1 AND d.month = $2
		ORDER BY d.date, d.id`, year, m)
	if err != nil {
		return nil, fmt.Errorf("list diary: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DiaryTask, error) {
		var t DiaryTask
		var d time.Time
		err := row.Scan(&d, &t.Task, &t.Completed)
		t.Date = formatDate(d)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan diary: %w", err)
	}
	return tasks, nil
}

func (s *Store) AddDiaryTask(ctx context.Context, year int, monthName string, date time.Time, task string, completed bool) error {
	task, err := required("task", task)
	if err != nil {
		return err
	}
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO monthly_diary (year_id, month, date, task, completed) VALUES ($1, $2, $3, $4, $5)`,
		id, m, date, task, completed)
	if err != nil {
		return fmt.Errorf("add diary task: %w", err)
	}
	return nil
}

func (s *Store) SetDiaryTaskState(ctx context.Context, year int, monthName string, date time.Time, task string, done bool) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE monthly_diary SET completed = $1
		WHERE year_id = $2 AND month = $3 AND date = $4 AND task = $5`, done, id, m, date, task)
	if err != nil {
		return fmt.Errorf("update diary task: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("diary task %q on %s", task, formatDate(date)))
}

func (s *Store) DeleteDiaryTask(ctx context.Context, year int, monthName string, date time.Time, task string) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM monthly_diary WHERE year_id = $1 AND month = $2 AND date = $3 AND task = $4`, id, m, date, task)
	if err != nil {
		return fmt.Errorf("delete diary task: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("diary task %q on %s", task, formatDate(date)))
}

func (s *Store) RenameDiaryTask(ctx context.Context, year int, monthName string, date time.Time, oldTask, newTask string) error {
	newTask, err := required("new_task", newTask)
	if err != nil {
		return err
	}
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE monthly_diary SET task = $1
		WHERE year_id = $2 AND month = $3 AND date = $4 AND task = $5`, newTask, id, m, date, oldTask)
	if err != nil {
		return fmt.Errorf("rename diary task: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("diary task %q on %s", oldTask, formatDate(date)))
}

// Day colours and popups.

func (s *Store) ListDayColours(ctx context.Context, year int, monthName string) ([]DayColour, error) {
	m, err := month(monthName)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(c.colour_code, ''), c.date
		FROM task_colours c JOIN years y ON y.id = c.year_id
		WHERE y.year = $1 AND c.month = $2
		ORDER BY c.date, c.id`, year, m)
	if err != nil {
		return nil, fmt.Errorf("list day colours: %w", err)
	}
	colours, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DayColour, error) {
		var c DayColour
		var d time.Time
		err := row.Scan(&c.ColourCode, &d)
		c.Date = formatDate(d)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan day colours: %w", err)
	}
	return colours, nil
}

// SetDayColour colours a day, replacing the previous colour of that date.
func (s *Store) SetDayColour(ctx context.Context, year int, monthName string, date time.Time, code string) error {
	if !colourCode.MatchString(code) {
		return fmt.Errorf("colour %q must be #RRGGBB: %w", code, ErrInvalid)
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, m, err := monthScope(ctx, tx, year, monthName)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE task_colours SET colour_code = $1 WHERE year_id = $2 AND month = $3 AND date = $4`, code, id, m, date)
		if err != nil {
			return fmt.Errorf("update day colour: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO task_colours (year_id, month, date, colour_code) VALUES ($1, $2, $3, $4)`, id, m, date, code); err != nil {
			return fmt.Errorf("add day colour: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteDayColour(ctx context.Context, year int, monthName string, date time.Time) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM task_colours WHERE year_id = $1 AND month = $2 AND date = $3`, id, m, date)
	if err != nil {
		return fmt.Errorf("delete day colour: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("colour on %s", formatDate(date)))
}

func (s *Store) ListDayPopups(ctx context.Context, year int, monthName string) ([]DayPopup, error) {
	m, err := month(monthName)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(p.popup_message, ''), p.date
		FROM task_popups p JOIN years y ON y.id = p.year_id
		WHERE y.year = $1 AND p.month = $2
		ORDER BY p.date, p.id`, year, m)
	if err != nil {
		return nil, fmt.Errorf("list day popups: %w", err)
	}
	popups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DayPopup, error) {
		var p DayPopup
		var d time.Time
		err := row.Scan(&p.PopupMessage, &d)
		p.Date = formatDate(d)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan day popups: %w", err)
	}
	return popups, nil
}

// SetDayPopup attaches message to a day, replacing the previous note of that date.
func (s *Store) SetDayPopup(ctx context.Context, year int, monthName string, date time.Time, message string) error {
	message, err := required("popup_message", message)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, m, err := monthScope(ctx, tx, year, monthName)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE task_popups SET popup_message = $1 WHERE year_id = $2 AND month = $3 AND date = $4`, message, id, m, date)
		if err != nil {
			return fmt.Errorf("update day popup: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO task_popups (year_id, month, date, popup_message) VALUES ($1, $2, $3, $4)`, id, m, date, message); err != nil {
			return fmt.Errorf("add day popup: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteDayPopup(ctx context.Context, year int, monthName string, date time.Time) error {
	id, m, err := monthScope(ctx, s.pool, year, monthName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM task_popups WHERE year_id = $1 AND month = $2 AND date = $3`, id, m, date)
	if err != nil {
		return fmt.Errorf("delete day popup: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("popup on %s", formatDate(date)))
}
