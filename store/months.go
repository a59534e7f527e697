package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// MonthState is the progress icon of a month on the year overview.
type MonthState struct {
	MonthName string `json:"month_name"`
	IconPath  string `json:"icon_path"`
}

// MonthDetails is the presentation data of one month page.
type MonthDetails struct {
	IconPath      string `json:"icon_path"`
	Banner        string `json:"banner"`
	ReadingLink   string `json:"reading_link"`
	MonthIconPath string `json:"month_icon_path"`
}

func (s *Store) MonthStates(ctx context.Context, year int) ([]MonthState, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT m.month_name, COALESCE(m.icon_path, '')
		FROM months m JOIN years y ON y.id = m.year_id
		WHERE y.year = $1
		ORDER BY `+monthOrder+`, m.id`, "m.month_name"), year)
	if err != nil {
		return nil, fmt.Errorf("list month states: %w", err)
	}
	states, err := pgx.CollectRows(rows, pgx.RowToStructByPos[MonthState])
	if err != nil {
		return nil, fmt.Errorf("scan month states: %w", err)
	}
	return states, nil
}

func (s *Store) SetMonthIcon(ctx context.Context, year int, monthName, iconPath string) error {
	m, err := month(monthName)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE months SET icon_path = $1 WHERE year_id = $2 AND month_name = $3`, iconPath, id, m)
	if err != nil {
		return fmt.Errorf("update month icon: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("month %s of %d", m, year))
}

func (s *Store) MonthDetails(ctx context.Context, year int, monthName string) (MonthDetails, error) {
	m, err := month(monthName)
	if err != nil {
		return MonthDetails{}, err
	}
	var d MonthDetails
	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(m.icon_path, ''), COALESCE(m.banner, ''), COALESCE(m.reading_link, ''), COALESCE(m.month_icon_path, '')
		FROM months m JOIN years y ON y.id = m.year_id
		WHERE y.year = $1 AND m.month_name = $2`, year, m).Scan(&d.IconPath, &d.Banner, &d.ReadingLink, &d.MonthIconPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonthDetails{}, fmt.Errorf("month %s of %d: %w", m, year, ErrNotFound)
	}
	if err != nil {
		return MonthDetails{}, fmt.Errorf("get month details: %w", err)
	}
	return d, nil
}

func (s *Store) SetReadingLink(ctx context.Context, year int, monthName, link string) error {
	m, err := month(monthName)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE months SET reading_link = $1 WHERE year_id = $2 AND month_name = $3`, link, id, m)
	if err != nil {
		return fmt.Errorf("update reading link: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("month %s of %d", m, year))
}
