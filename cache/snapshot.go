package cache

import (
	"context"
	"fmt"

	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/store"
)

// Source reads the live data of a year, normally from the planner server.
type Source interface {
	Calendar(ctx context.Context, year int) ([]store.CalendarEvent, error)
	YearlyPlans(ctx context.Context, year int) ([]store.PlanTask, error)
	HabitTracker(ctx context.Context, year int) (store.HabitWeeks, error)
	Gratitude(ctx context.Context, year int) ([]store.GratitudeEntry, error)
	BestInMonths(ctx context.Context, year int) ([]store.BestInMonth, error)
	MonthGoals(ctx context.Context, year int, month string) ([]store.PlanTask, error)
	MonthDiary(ctx context.Context, year int, month string) ([]store.DiaryTask, error)
	Review(ctx context.Context, year int) ([]store.ReviewAnswer, error)
}

// Build assembles the mirror document of year from src.
func Build(ctx context.Context, year int, src Source) (Document, error) {
	doc := Document{
		Calendar:       map[string][]string{},
		GratitudeDiary: map[string]string{},
		BestInMonths:   map[string]string{},
		Months:         map[string]MonthPage{},
		Review:         map[string]string{},
	}

	events, err := src.Calendar(ctx, year)
	if err != nil {
		return doc, fmt.Errorf("calendar: %w", err)
	}
	for _, e := range events {
		doc.Calendar[e.Date] = append(doc.Calendar[e.Date], e.Event)
	}

	if doc.YearlyPlans, err = src.YearlyPlans(ctx, year); err != nil {
		return doc, fmt.Errorf("yearly plans: %w", err)
	}
	if doc.HabitTracker, err = src.HabitTracker(ctx, year); err != nil {
		return doc, fmt.Errorf("habit tracker: %w", err)
	}

	entries, err := src.Gratitude(ctx, year)
	if err != nil {
		return doc, fmt.Errorf("gratitude diary: %w", err)
	}
	for _, e := range entries {
		doc.GratitudeDiary[e.Date] = e.Entry
	}

	best, err := src.BestInMonths(ctx, year)
	if err != nil {
		return doc, fmt.Errorf("best in months: %w", err)
	}
	for _, b := range best {
		doc.BestInMonths[b.Month] = b.ImagePath
	}

	for _, m := range schema.MonthNames {
		page := MonthPage{Diary: map[string][]DiaryEntry{}}
		if page.Plans, err = src.MonthGoals(ctx, year, m); err != nil {
			return doc, fmt.Errorf("%s goals: %w", m, err)
		}
		tasks, err := src.MonthDiary(ctx, year, m)
		if err != nil {
			return doc, fmt.Errorf("%s diary: %w", m, err)
		}
		for _, t := range tasks {
			page.Diary[t.Date] = append(page.Diary[t.Date], DiaryEntry{Task: t.Task, Completed: t.Completed})
		}
		doc.Months[m] = page
	}

	answers, err := src.Review(ctx, year)
	if err != nil {
		return doc, fmt.Errorf("review: %w", err)
	}
	for _, a := range answers {
		doc.Review[a.Question] = a.Answer
	}
	return doc, nil
}

// Snapshot overwrites the mirror of year with live data from src.
func (m *Mirror) Snapshot(ctx context.Context, year int, src Source) error {
	doc, err := Build(ctx, year, src)
	if err != nil {
		return fmt.Errorf("snapshot %d: %w", year, err)
	}
	return m.Save(year, doc)
}
