package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/lifeplan/schema"
)

// BestInMonth is the picture chosen for one month.
type BestInMonth struct {
	Month     string `json:"month"`
	ImagePath string `json:"image_path"`
}

func month(name string) (string, error) {
	m, ok := schema.CanonicalMonth(strings.TrimSpace(name))
	if !ok {
		return "", fmt.Errorf("month %q: %w", name, ErrInvalid)
	}
	return m, nil
}

// monthOrder sorts a month-name column in calendar order.
const monthOrder = `array_position(ARRAY['January','February','March','April','May','June','July','August','September','October','November','December']::text[], %s::text)`

// ListBestInMonths returns the year's pictures in calendar month order.
func (s *Store) ListBestInMonths(ctx context.Context, year int) ([]BestInMonth, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT b.month, COALESCE(b.image_path, '')
		FROM best_in_months b JOIN years y ON y.id = b.year_id
		WHERE y.year = $1 AND b.month IS NOT NULL
		ORDER BY `+monthOrder+`, b.id`, "b.month"), year)
	if err != nil {
		return nil, fmt.Errorf("list best in months: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[BestInMonth])
	if err != nil {
		return nil, fmt.Errorf("scan best in months: %w", err)
	}
	return items, nil
}

// SetBestInMonth stores the picture of a month, replacing any previous one.
// The year is created when missing.
func (s *Store) SetBestInMonth(ctx context.Context, year int, monthName, imagePath string) error {
	m, err := month(monthName)
	if err != nil {
		return err
	}
	image, err := required("image_path", NormalizeImagePath(imagePath))
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := ensureYear(ctx, tx, year)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO best_in_months (year_id, month, image_path) VALUES ($1, $2, $3)
			ON CONFLICT (year_id, month) DO UPDATE SET image_path = EXCLUDED.image_path`, id, m, image)
		if err != nil {
			return fmt.Errorf("set best in month: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteBestInMonth(ctx context.Context, year int, monthName string) error {
	m, err := month(monthName)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM best_in_months WHERE year_id = $1 AND month = $2`, id, m)
	if err != nil {
		return fmt.Errorf("delete best in month: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("best in %s", m))
}
