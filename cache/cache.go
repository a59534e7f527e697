// Package cache keeps the client-side JSON mirror of each planner year.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lifeplan.cache")

// ErrNotFound is returned when a year has no mirror file.
var ErrNotFound = errors.New("year file not found")

// DiaryEntry is one task of a month diary day.
type DiaryEntry struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// MonthPage mirrors one month of a year.
type MonthPage struct {
	Plans []store.PlanTask        `json:"plans"`
	Diary map[string][]DiaryEntry `json:"diary"`
}

// Document is the mirror of one year.
type Document struct {
	Calendar       map[string][]string  `json:"calendar"`
	YearlyPlans    []store.PlanTask     `json:"yearly_plans"`
	HabitTracker   store.HabitWeeks     `json:"habit_tracker"`
	GratitudeDiary map[string]string    `json:"gratitude_diary"`
	BestInMonths   map[string]string    `json:"best_in_months"`
	Months         map[string]MonthPage `json:"months"`
	Review         map[string]string    `json:"review"`
}

// NewDocument returns the structure of a freshly created year.
func NewDocument(year int, d loader.Defaults) Document {
	doc := Document{
		Calendar:       map[string][]string{},
		YearlyPlans:    []store.PlanTask{},
		HabitTracker:   store.HabitWeeks{},
		GratitudeDiary: map[string]string{},
		BestInMonths:   map[string]string{},
		Months:         map[string]MonthPage{},
		Review:         map[string]string{},
	}

	week := map[string][]store.HabitTask{}
	for _, h := range d.Habits {
		tasks := make([]store.HabitTask, 0, len(h.Tasks))
		for _, t := range h.Tasks {
			tasks = append(tasks, store.HabitTask{Task: t})
		}
		week[h.Day] = tasks
	}
	doc.HabitTracker[fmt.Sprintf("%s%04d-01-01", store.WeekPrefix, year)] = week

	for _, m := range schema.MonthNames {
		doc.Months[m] = MonthPage{Plans: []store.PlanTask{}, Diary: map[string][]DiaryEntry{}}
	}
	for _, q := range d.ReviewQuestions {
		doc.Review[q] = ""
	}
	return doc
}

// Mirror is the data/years folder of the client.
type Mirror struct {
	dir string
}

// New returns the mirror below dataDir.
func New(dataDir string) *Mirror {
	return &Mirror{dir: filepath.Join(dataDir, "years")}
}

// Path is the mirror file of year.
func (m *Mirror) Path(year int) string {
	return filepath.Join(m.dir, strconv.Itoa(year)+".json")
}

// Exists reports whether year has a mirror file.
func (m *Mirror) Exists(year int) bool {
	_, err := os.Stat(m.Path(year))
	return err == nil
}

// Create writes the default structure for year unless a file already exists.
func (m *Mirror) Create(year int, d loader.Defaults) error {
	if m.Exists(year) {
		return nil
	}
	return m.Save(year, NewDocument(year, d))
}

// Save replaces the mirror of year.
func (m *Mirror) Save(year int, doc any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode year %d: %w", year, err)
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", m.dir, err)
	}
	if err := atomic.WriteFile(m.Path(year), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write year %d: %w", year, err)
	}
	log.Debugf("wrote %s", m.Path(year))
	return nil
}

// Load decodes the mirror of year.
func (m *Mirror) Load(year int) (Document, error) {
	var doc Document
	data, err := os.ReadFile(m.Path(year))
	if errors.Is(err, os.ErrNotExist) {
		return doc, fmt.Errorf("%d: %w", year, ErrNotFound)
	}
	if err != nil {
		return doc, fmt.Errorf("read year %d: %w", year, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode year %d: %w", year, err)
	}
	return doc, nil
}

// Delete removes the mirror of year. A missing file is not an error.
func (m *Mirror) Delete(year int) error {
	if err := os.Remove(m.Path(year)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete year %d: %w", year, err)
	}
	return nil
}

// Rename moves the mirror of oldYear to newYear and rewrites every date and
// year asset path inside it. Unknown keys survive untouched.
func (m *Mirror) Rename(oldYear, newYear int) error {
	data, err := os.ReadFile(m.Path(oldYear))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%d: %w", oldYear, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read year %d: %w", oldYear, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode year %d: %w", oldYear, err)
	}
	doc = NewYearRewriter(oldYear, newYear).Rewrite(doc)

	if err := m.Save(newYear, doc); err != nil {
		return err
	}
	if oldYear != newYear {
		if err := os.Remove(m.Path(oldYear)); err != nil {
			return fmt.Errorf("remove year %d: %w", oldYear, err)
		}
	}
	log.Infof("renamed mirror %d to %d", oldYear, newYear)
	return nil
}
