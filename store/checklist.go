package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/lifeplan/schema"
)

// ChecklistItem is one goal or course.
type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Checklist is a flat list of titled items with a completed flag.
// Goals and courses share this shape and differ only in their table.
type Checklist struct {
	db    dbtx
	table string
	noun  string
}

func (s *Store) Goals() *Checklist {
	return &Checklist{db: s.pool, table: schema.Goals, noun: "goal"}
}

func (s *Store) Courses() *Checklist {
	return &Checklist{db: s.pool, table: schema.Courses, noun: "course"}
}

func (c *Checklist) List(ctx context.Context) ([]ChecklistItem, error) {
	rows, err := c.db.Query(ctx, fmt.Sprintf(`SELECT title, completed FROM %s ORDER BY id`, c.table))
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", c.noun, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ChecklistItem, error) {
		var it ChecklistItem
		err := row.Scan(&it.Text, &it.Completed)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %ss: %w", c.noun, err)
	}
	return items, nil
}

func (c *Checklist) Add(ctx context.Context, title string) error {
	title, err := required("title", title)
	if err != nil {
		return err
	}
	if _, err := c.db.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (title, completed) VALUES ($1, false)`, c.table), title); err != nil {
		return fmt.Errorf("add %s: %w", c.noun, err)
	}
	return nil
}

func (c *Checklist) SetCompleted(ctx context.Context, title string, completed bool) error {
	tag, err := c.db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET completed = $1 WHERE title = $2`, c.table), completed, title)
	if err != nil {
		return fmt.Errorf("update %s status: %w", c.noun, err)
	}
	return expectOne(tag, fmt.Sprintf("%s %q", c.noun, title))
}

func (c *Checklist) Rename(ctx context.Context, title, newTitle string) error {
	newTitle, err := required("new_title", newTitle)
	if err != nil {
		return err
	}
	tag, err := c.db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET title = $1 WHERE title = $2`, c.table), newTitle, title)
	if err != nil {
		return fmt.Errorf("rename %s: %w", c.noun, err)
	}
	return expectOne(tag, fmt.Sprintf("%s %q", c.noun, title))
}

func (c *Checklist) Delete(ctx context.Context, title string) error {
	tag, err := c.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE title = $1`, c.table), title)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.noun, err)
	}
	return expectOne(tag, fmt.Sprintf("%s %q", c.noun, title))
}
