package cache

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearRewriter(t *testing.T) {
	r := NewYearRewriter(2025, 2026)
	tests := map[string]string{
		"Week starting 2025-01-06":                 "Week starting 2026-01-06",
		"2024-12-31":                               "2024-12-31",
		"1/21/25":                                  "1/21/26",
		"12/1/24":                                  "12/1/24",
		"01.05.25":                                 "01.05.26",
		"/assets/yearly_plans/year/2025/march.png": "/assets/yearly_plans/year/2026/march.png",
		"/assets/yearly_plans/year/20250/x.png":    "/assets/yearly_plans/year/20250/x.png",
		"Plans for 2025 are ambitious":             "Plans for 2025 are ambitious",
		"from 2025-03-01 to 2025-03-05":            "from 2026-03-01 to 2026-03-05",
	}
	for in, want := range tests {
		assert.Equal(t, want, r.String(in), in)
	}
}

func TestRewriteNested(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"calendar": {"2025-02-14": ["Valentine"]},
		"best_in_months": {"March": "yearly_plans/year/2025/m.png"},
		"months": {"May": {"diary": {"05.05.25": [{"task": "x", "completed": true}]}}},
		"count": 3
	}`), &doc))

	got := NewYearRewriter(2025, 2030).Rewrite(doc)
	want := map[string]any{
		"calendar":       map[string]any{"2030-02-14": []any{"Valentine"}},
		"best_in_months": map[string]any{"March": "yearly_plans/year/2030/m.png"},
		"months": map[string]any{"May": map[string]any{
			"diary": map[string]any{"05.05.30": []any{map[string]any{"task": "x", "completed": true}}},
		}},
		"count": float64(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rewrite mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteLeapDay(t *testing.T) {
	r := NewYearRewriter(2024, 2027)
	tests := map[string]string{
		"2024-02-29":               "2027-02-28",
		"Week starting 2024-02-29": "Week starting 2027-02-28",
		"2/29/24":                  "2/28/27",
		"29.02.24":                 "28.02.27",
		"2024-02-28":               "2027-02-28",
		"Paid on 2024-12-31":       "Paid on 2027-12-31",
	}
	for in, want := range tests {
		assert.Equal(t, want, r.String(in), in)
	}

	// Into a leap year nothing moves.
	assert.Equal(t, "2028-02-29", NewYearRewriter(2024, 2028).String("2024-02-29"))

	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"calendar": {"2024-02-29": ["Leap day"], "2024-02-28": ["Eve"]}
	}`), &doc))
	got := r.Rewrite(doc).(map[string]any)["calendar"].(map[string]any)
	require.Len(t, got, 1)
	assert.ElementsMatch(t, []any{"Leap day", "Eve"}, got["2027-02-28"])
}

func TestMirrorLifecycle(t *testing.T) {
	m := New(t.TempDir())
	defaults := loader.MustBuiltin()

	require.NoError(t, m.Create(2025, defaults))
	doc, err := m.Load(2025)
	require.NoError(t, err)
	assert.Len(t, doc.Months, 12)
	assert.Len(t, doc.Review, len(defaults.ReviewQuestions))
	week := doc.HabitTracker["Week starting 2025-01-01"]
	require.NotNil(t, week)
	assert.Equal(t, []store.HabitTask{{Task: "Rest :3"}}, week["Sunday"])

	doc.Calendar["2025-07-04"] = []string{"Fireworks"}
	require.NoError(t, m.Save(2025, doc))
	require.NoError(t, m.Create(2025, defaults), "existing file is kept")
	doc, err = m.Load(2025)
	require.NoError(t, err)
	assert.Contains(t, doc.Calendar, "2025-07-04")

	require.NoError(t, m.Rename(2025, 2027))
	assert.False(t, m.Exists(2025))
	doc, err = m.Load(2027)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fireworks"}, doc.Calendar["2027-07-04"])
	assert.Contains(t, doc.HabitTracker, "Week starting 2027-01-01")

	require.NoError(t, m.Delete(2027))
	require.NoError(t, m.Delete(2027))
	_, err = m.Load(2027)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Rename(2027, 2028), ErrNotFound)
}

func TestRenameKeepsUnknownKeys(t *testing.T) {
	m := New(t.TempDir())
	require.NoError(t, os.MkdirAll(m.dir, 0o755))
	require.NoError(t, os.WriteFile(m.Path(2025), []byte(`{"notes": {"1/2/25": "custom"}}`), 0o644))

	require.NoError(t, m.Rename(2025, 2026))
	data, err := os.ReadFile(m.Path(2026))
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes": {"1/2/26": "custom"}}`, string(data))
}

type fakeSource struct{}

func (fakeSource) Calendar(context.Context, int) ([]store.CalendarEvent, error) {
	return []store.CalendarEvent{{Date: "2025-01-01", Event: "A"}, {Date: "2025-01-01", Event: "B"}}, nil
}
func (fakeSource) YearlyPlans(context.Context, int) ([]store.PlanTask, error) {
	return []store.PlanTask{{Task: "Move", Done: true}}, nil
}
func (fakeSource) HabitTracker(context.Context, int) (store.HabitWeeks, error) {
	return store.HabitWeeks{"Week starting 2025-01-01": {"Monday": {{Task: "Reading"}}}}, nil
}
func (fakeSource) Gratitude(context.Context, int) ([]store.GratitudeEntry, error) {
	return []store.GratitudeEntry{{Date: "2025-01-02", Entry: "Snow"}}, nil
}
func (fakeSource) BestInMonths(context.Context, int) ([]store.BestInMonth, error) {
	return []store.BestInMonth{{Month: "March", ImagePath: "m.png"}}, nil
}
func (fakeSource) MonthGoals(_ context.Context, _ int, month string) ([]store.PlanTask, error) {
	if month == "May" {
		return []store.PlanTask{{Task: "Garden"}}, nil
	}
	return []store.PlanTask{}, nil
}
func (fakeSource) MonthDiary(_ context.Context, _ int, month string) ([]store.DiaryTask, error) {
	if month == "May" {
		return []store.DiaryTask{{Date: "2025-05-04", Task: "Dentist", Completed: true}}, nil
	}
	return []store.DiaryTask{}, nil
}
func (fakeSource) Review(context.Context, int) ([]store.ReviewAnswer, error) {
	return []store.ReviewAnswer{{Question: "Q", Answer: "A"}}, nil
}

func TestSnapshot(t *testing.T) {
	m := New(t.TempDir())
	require.NoError(t, m.Snapshot(context.Background(), 2025, fakeSource{}))

	doc, err := m.Load(2025)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, doc.Calendar["2025-01-01"])
	assert.Equal(t, "Snow", doc.GratitudeDiary["2025-01-02"])
	assert.Equal(t, "m.png", doc.BestInMonths["March"])
	assert.Equal(t, []store.PlanTask{{Task: "Garden"}}, doc.Months["May"].Plans)
	assert.Equal(t, []DiaryEntry{{Task: "Dentist", Completed: true}}, doc.Months["May"].Diary["2025-05-04"])
	assert.Len(t, doc.Months, 12)
	assert.Equal(t, map[string]string{"Q": "A"}, doc.Review)
}
