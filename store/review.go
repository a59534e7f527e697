package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ReviewAnswer is one answered question of the year review.
type ReviewAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Review returns the year's questions in the order they were seeded.
func (s *Store) Review(ctx context.Context, year int) ([]ReviewAnswer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(r.question, ''), COALESCE(r.answer, '')
		FROM review r JOIN years y ON y.id = r.year_id
		WHERE y.year = $1
		ORDER BY r.id`, year)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	answers, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ReviewAnswer])
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("review of %d: %w", year, ErrNotFound)
	}
	return answers, nil
}

// UpdateReview stores every answer, adding questions the year does not have yet.
func (s *Store) UpdateReview(ctx context.Context, year int, answers []ReviewAnswer) error {
	for _, a := range answers {
		if _, err := required("question", a.Question); err != nil {
			return err
		}
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		id, err := yearID(ctx, tx, year)
		if err != nil {
			return err
		}
		for _, a := range answers {
			tag, err := tx.Exec(ctx, `UPDATE review SET answer = $1 WHERE year_id = $2 AND question = $3`, a.Answer, id, a.Question)
			if err != nil {
				return fmt.Errorf("update answer: %w", err)
			}
			if tag.RowsAffected() > 0 {
				continue
			}
			if _, err := tx.Exec(ctx, `INSERT INTO review (year_id, question, answer) VALUES ($1, $2, $3)`, id, a.Question, a.Answer); err != nil {
				return fmt.Errorf("add answer: %w", err)
			}
		}
		return nil
	})
}
