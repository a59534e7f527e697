package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CalendarEvent is a dated note on the year calendar.
type CalendarEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// ListCalendar returns the events of year ordered by date. Unknown years have no events.
func (s *Store) ListCalendar(ctx context.Context, year int) ([]CalendarEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.date, COALESCE(c.event, '')
		FROM calendar c JOIN years y ON y.id = c.year_id
		WHERE y.year = $1
		ORDER BY c.date, c.id`, year)
	if err != nil {
		return nil, fmt.Errorf("list calendar: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CalendarEvent, error) {
		var e CalendarEvent
		var d time.Time
		err := row.Scan(&d, &e.Event)
		e.Date = formatDate(d)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan calendar: %w", err)
	}
	return events, nil
}

// AddCalendarEvent records event on date, creating the year when needed.
func (s *Store) AddCalendarEvent(ctx context.Context, year int, date time.Time, event string) error {
	event, err := required("event", event)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := ensureYear(ctx, tx, year)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO calendar (year_id, date, event) VALUES ($1, $2, $3)`, id, date, event); err != nil {
			return fmt.Errorf("add calendar event: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteCalendarEvent(ctx context.Context, year int, date time.Time, event string) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM calendar WHERE year_id = $1 AND date = $2 AND event = $3`, id, date, event)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("event %q on %s", event, formatDate(date)))
}
