package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PlanTask is a task with a done flag, as used by yearly and monthly plans.
type PlanTask struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

func (s *Store) ListYearlyPlans(ctx context.Context, year int) ([]PlanTask, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.task, p.completed
		FROM yearly_plans p JOIN years y ON y.id = p.year_id
		WHERE y.year = $1
		ORDER BY p.id`, year)
	if err != nil {
		return nil, fmt.Errorf("list yearly plans: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByPos[PlanTask])
	if err != nil {
		return nil, fmt.Errorf("scan yearly plans: %w", err)
	}
	return tasks, nil
}

func (s *Store) AddYearlyPlan(ctx context.Context, year int, task string, completed bool) error {
	task, err := required("task", task)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO yearly_plans (year_id, task, completed) VALUES ($1, $2, $3)`, id, task, completed); err != nil {
		return fmt.Errorf("add yearly plan: %w", err)
	}
	return nil
}

func (s *Store) SetYearlyPlanStatus(ctx context.Context, year int, task string, completed bool) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE yearly_plans SET completed = $1 WHERE year_id = $2 AND task = $3`, completed, id, task)
	if err != nil {
		return fmt.Errorf("update yearly plan status: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("task %q", task))
}

func (s *Store) DeleteYearlyPlan(ctx context.Context, year int, task string) error {
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM yearly_plans WHERE year_id = $1 AND task = $2`, id, task)
	if err != nil {
		return fmt.Errorf("delete yearly plan: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("task %q", task))
}

// EditYearlyPlan replaces the text and status of oldTask.
func (s *Store) EditYearlyPlan(ctx context.Context, year int, oldTask, task string, completed bool) error {
	task, err := required("task", task)
	if err != nil {
		return err
	}
	id, err := yearID(ctx, s.pool, year)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE yearly_plans SET task = $1, completed = $2 WHERE year_id = $3 AND task = $4`, task, completed, id, oldTask)
	if err != nil {
		return fmt.Errorf("edit yearly plan: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("task %q", oldTask))
}
