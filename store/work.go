package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// WorkNote is a note written for a work place.
type WorkNote struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func workID(ctx context.Context, db dbtx, place string) (int, error) {
	var id int
	err := db.QueryRow(ctx, `SELECT id FROM work WHERE work_name = $1`, place).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("work place %q: %w", place, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get work place: %w", err)
	}
	return id, nil
}

func (s *Store) ListWorkPlaces(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT work_name FROM work ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list work places: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan work places: %w", err)
	}
	return names, nil
}

func (s *Store) AddWorkPlace(ctx context.Context, name string) (int, error) {
	name, err := required("work_name", name)
	if err != nil {
		return 0, err
	}
	var id int
	err = s.pool.QueryRow(ctx, `INSERT INTO work (work_name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("work place %q: %w", name, ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("add work place: %w", err)
	}
	return id, nil
}

// DeleteWorkPlace removes a place together with its notes.
func (s *Store) DeleteWorkPlace(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM work WHERE work_name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete work place: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("work place %q", name))
}

func (s *Store) RenameWorkPlace(ctx context.Context, oldName, newName string) error {
	newName, err := required("new_name", newName)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE work SET work_name = $1 WHERE work_name = $2`, newName, oldName)
	if isUniqueViolation(err) {
		return fmt.Errorf("work place %q: %w", newName, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("rename work place: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("work place %q", oldName))
}

// ListWorkNotes returns the notes of a place, newest first.
func (s *Store) ListWorkNotes(ctx context.Context, place string) ([]WorkNote, error) {
	id, err := workID(ctx, s.pool, place)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(note_text, ''), created_at
		FROM work_place WHERE work_id = $1
		ORDER BY created_at DESC, id DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("list work notes: %w", err)
	}
	notes, err := pgx.CollectRows(rows, pgx.RowToStructByPos[WorkNote])
	if err != nil {
		return nil, fmt.Errorf("scan work notes: %w", err)
	}
	return notes, nil
}

func (s *Store) AddWorkNote(ctx context.Context, place, text string) (int, error) {
	text, err := required("text", text)
	if err != nil {
		return 0, err
	}
	var id int
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		placeID, err := workID(ctx, tx, place)
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `INSERT INTO work_place (work_id, note_text) VALUES ($1, $2) RETURNING id`, placeID, text).Scan(&id); err != nil {
			return fmt.Errorf("add work note: %w", err)
		}
		return nil
	})
	return id, err
}

func (s *Store) DeleteWorkNote(ctx context.Context, place, text string) error {
	id, err := workID(ctx, s.pool, place)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM work_place WHERE work_id = $1 AND note_text = $2`, id, text)
	if err != nil {
		return fmt.Errorf("delete work note: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("note %q", text))
}

func (s *Store) EditWorkNote(ctx context.Context, place, oldText, newText string) error {
	newText, err := required("new_text", newText)
	if err != nil {
		return err
	}
	id, err := workID(ctx, s.pool, place)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE work_place SET note_text = $1 WHERE work_id = $2 AND note_text = $3`, newText, id, oldText)
	if err != nil {
		return fmt.Errorf("edit work note: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("note %q", oldText))
}
