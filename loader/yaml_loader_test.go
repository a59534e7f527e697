package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDefaults(t *testing.T) {
	d, err := LoadDefaults("")
	require.NoError(t, err)

	require.Len(t, d.Habits, 7)
	assert.Equal(t, "Monday", d.Habits[0].Day)
	assert.Equal(t, []string{"Rest :3"}, d.Habits[6].Tasks)
	require.Len(t, d.ReviewQuestions, 10)
	assert.Equal(t, "10. Did you do your best?", d.ReviewQuestions[9])

	months := d.Months()
	require.Len(t, months, 12)
	assert.Equal(t, MonthPreset{
		Name:          "March",
		IconPath:      "yearly_plans/year/not_started_icon.png",
		Banner:        "yearly_plans/months/banners/march.png",
		MonthIconPath: "yearly_plans/months/icons/march.png",
	}, months[2])
}

func TestNextMonthState(t *testing.T) {
	d := MustBuiltin()
	first, second, third := d.MonthStates[0], d.MonthStates[1], d.MonthStates[2]

	assert.Equal(t, second, d.NextMonthState(first))
	assert.Equal(t, third, d.NextMonthState(second))
	assert.Equal(t, first, d.NextMonthState(third))
	assert.Equal(t, first, d.NextMonthState("something/else.png"))
}

func TestParseDefaults_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad weekday":   "habits: [{day: Someday, tasks: [x]}]\nreview_questions: [q]\nmonth_states: [s]",
		"duplicate day": "habits: [{day: Monday}, {day: monday}]\nreview_questions: [q]\nmonth_states: [s]",
		"no questions":  "month_states: [s]",
		"no states":     "review_questions: [q]",
		"not yaml":      "habits: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDefaults([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadDefaults_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("review_questions: [\"Why?\"]\nmonth_states: [a.png, b.png]\n"), 0o600))

	d, err := LoadDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Why?"}, d.ReviewQuestions)
	assert.Empty(t, d.Habits)

	_, err = LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
