package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ridoystarlord/lifeplan/internal/pgtest"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	pool := pgtest.NewMigratedPool(t)
	defaults := loader.MustBuiltin()
	s := store.New(pool, defaults)
	ctx := context.Background()

	t.Run("year seeding", func(t *testing.T) {
		y, err := s.AddYear(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, 2025, y.Year)
		assert.NotZero(t, y.ID)

		_, err = s.AddYear(ctx, 2025)
		assert.ErrorIs(t, err, store.ErrConflict)

		review, err := s.Review(ctx, 2025)
		require.NoError(t, err)
		require.Len(t, review, len(defaults.ReviewQuestions))
		assert.Equal(t, defaults.ReviewQuestions[0], review[0].Question)
		assert.Empty(t, review[0].Answer)

		states, err := s.MonthStates(ctx, 2025)
		require.NoError(t, err)
		require.Len(t, states, 12)
		assert.Equal(t, "January", states[0].MonthName)
		assert.Equal(t, "December", states[11].MonthName)

		weeks, err := s.HabitTracker(ctx, 2025)
		require.NoError(t, err)
		week, ok := weeks["Week starting 2025-01-01"]
		require.True(t, ok, "weeks: %v", weeks)
		assert.Len(t, week, 7)
		assert.Equal(t, "Rest :3", week["Sunday"][0].Task)
	})

	t.Run("year rename shifts dates", func(t *testing.T) {
		_, err := s.AddYear(ctx, 2024)
		require.NoError(t, err)
		leap, err := store.ParseDate("2024-02-29")
		require.NoError(t, err)
		require.NoError(t, s.AddCalendarEvent(ctx, 2024, leap, "Leap day"))
		require.NoError(t, s.AddGratitude(ctx, 2024, leap, "Extra day"))

		assert.ErrorIs(t, s.RenameYear(ctx, 2024, 2025), store.ErrConflict)
		assert.ErrorIs(t, s.RenameYear(ctx, 1999, 2000), store.ErrNotFound)

		require.NoError(t, s.RenameYear(ctx, 2024, 2027))

		events, err := s.ListCalendar(ctx, 2027)
		require.NoError(t, err)
		assert.Equal(t, []store.CalendarEvent{{Date: "2027-02-28", Event: "Leap day"}}, events)

		entries, err := s.ListGratitude(ctx, 2027)
		require.NoError(t, err)
		assert.Equal(t, "2027-02-28", entries[0].Date)

		weeks, err := s.HabitTracker(ctx, 2027)
		require.NoError(t, err)
		assert.Contains(t, weeks, "Week starting 2027-01-01")

		old, err := s.ListCalendar(ctx, 2024)
		require.NoError(t, err)
		assert.Empty(t, old)

		var id int
		require.NoError(t, pool.QueryRow(ctx, `SELECT id FROM years WHERE year = 2027`).Scan(&id))

		require.NoError(t, s.DeleteYear(ctx, 2027))
		assert.ErrorIs(t, s.DeleteYear(ctx, 2027), store.ErrNotFound)

		for table := range schema.YearScoped() {
			var n int
			require.NoError(t, pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s WHERE year_id = $1`, table), id).Scan(&n))
			assert.Zero(t, n, "rows left in %s", table)
		}
	})

	t.Run("checklists", func(t *testing.T) {
		goals := s.Goals()
		require.NoError(t, goals.Add(ctx, "Run a marathon"))
		require.NoError(t, goals.Add(ctx, "Learn Go"))
		require.NoError(t, goals.SetCompleted(ctx, "Learn Go", true))
		require.NoError(t, goals.Rename(ctx, "Run a marathon", "Run a half marathon"))
		assert.ErrorIs(t, goals.Delete(ctx, "Unknown"), store.ErrNotFound)
		assert.ErrorIs(t, goals.Add(ctx, "  "), store.ErrInvalid)

		items, err := goals.List(ctx)
		require.NoError(t, err)
		want := []store.ChecklistItem{{Text: "Run a half marathon"}, {Text: "Learn Go", Completed: true}}
		if diff := cmp.Diff(want, items); diff != "" {
			t.Errorf("goals mismatch (-want +got):\n%s", diff)
		}

		courses, err := s.Courses().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	t.Run("wishlist", func(t *testing.T) {
		price := decimal.RequireFromString("199.9")
		_, err := s.AddWish(ctx, store.WishlistItem{Title: "Bike", ImagePath: `uploads\assets\bike.png`, Price: &price})
		require.NoError(t, err)
		_, err = s.AddWish(ctx, store.WishlistItem{Title: "Tent", ImagePath: "uploads/assets/tent.png"})
		require.NoError(t, err)

		items, err := s.ListWishes(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "uploads/assets/bike.png", items[0].ImagePath)
		require.NotNil(t, items[0].Price)
		assert.True(t, items[0].Price.Equal(price))
		assert.Nil(t, items[1].Price)

		require.NoError(t, s.UpdateWish(ctx, "Tent", store.WishlistItem{Title: "Big tent", ImagePath: "uploads/assets/tent.png"}))
		image, err := s.WishImage(ctx, "Big tent")
		require.NoError(t, err)
		assert.Equal(t, "uploads/assets/tent.png", image)

		require.NoError(t, s.RemoveWish(ctx, "Bike"))
		assert.ErrorIs(t, s.RemoveWish(ctx, "Bike"), store.ErrNotFound)
	})

	t.Run("books", func(t *testing.T) {
		_, err := s.AddBook(ctx, store.Book{Title: "Dune", Authors: []string{"Frank Herbert", " ", "Frank Herbert"}, Status: "Reading"})
		require.NoError(t, err)
		_, err = s.AddBook(ctx, store.Book{Title: "Anonymous"})
		require.NoError(t, err)

		require.NoError(t, s.UpdateBook(ctx, "Dune", store.Book{
			Title: "Dune Messiah", Authors: []string{"Frank Herbert", "Brian Herbert"}, Series: "Dune",
		}))
		assert.ErrorIs(t, s.UpdateBook(ctx, "Dune", store.Book{Title: "x"}), store.ErrNotFound)

		books, err := s.ListBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune Messiah", books[0].Title)
		assert.Equal(t, []string{"Frank Herbert", "Brian Herbert"}, books[0].Authors)
		assert.Equal(t, "Dune", books[0].Series)
		assert.Equal(t, []string{}, books[1].Authors)

		require.NoError(t, s.DeleteBook(ctx, "Anonymous"))
		assert.ErrorIs(t, s.DeleteBook(ctx, "Anonymous"), store.ErrNotFound)
	})

	t.Run("habits", func(t *testing.T) {
		start, err := store.ParseDate("2025-01-06")
		require.NoError(t, err)
		require.NoError(t, s.SetHabitWeekStart(ctx, 2025, start))
		require.NoError(t, s.SetHabitState(ctx, 2025, "monday", "Reading", true))
		assert.ErrorIs(t, s.SetHabitState(ctx, 2025, "Monday", "Skydiving", true), store.ErrNotFound)

		require.NoError(t, s.EditHabitDay(ctx, 2025, start, "Monday", []string{"Reading", "Yoga"}))
		assert.ErrorIs(t, s.EditHabitDay(ctx, 2025, start, "Someday", nil), store.ErrInvalid)

		weeks, err := s.HabitTracker(ctx, 2025)
		require.NoError(t, err)
		monday := weeks["Week starting 2025-01-06"]["Monday"]
		assert.Equal(t, []store.HabitTask{{Task: "Reading", Completed: true}, {Task: "Yoga"}}, monday)

		require.NoError(t, s.ResetHabitStates(ctx, 2025))
		weeks, err = s.HabitTracker(ctx, 2025)
		require.NoError(t, err)
		assert.False(t, weeks["Week starting 2025-01-06"]["Monday"][0].Completed)
	})

	t.Run("best in months", func(t *testing.T) {
		require.NoError(t, s.SetBestInMonth(ctx, 2030, "march", "a.png"))
		require.NoError(t, s.SetBestInMonth(ctx, 2030, "January", "b.png"))
		require.NoError(t, s.SetBestInMonth(ctx, 2030, "March", "c.png"))
		assert.ErrorIs(t, s.SetBestInMonth(ctx, 2030, "Marchuary", "c.png"), store.ErrInvalid)

		items, err := s.ListBestInMonths(ctx, 2030)
		require.NoError(t, err)
		assert.Equal(t, []store.BestInMonth{{Month: "January", ImagePath: "b.png"}, {Month: "March", ImagePath: "c.png"}}, items)

		require.NoError(t, s.DeleteBestInMonth(ctx, 2030, "January"))
		assert.ErrorIs(t, s.DeleteBestInMonth(ctx, 2030, "January"), store.ErrNotFound)
	})

	t.Run("month pages", func(t *testing.T) {
		require.NoError(t, s.AddMonthGoal(ctx, 2025, "May", "Plant tomatoes", false))
		require.NoError(t, s.SetMonthGoalState(ctx, 2025, "May", "Plant tomatoes", true))
		require.NoError(t, s.RenameMonthGoal(ctx, 2025, "May", "Plant tomatoes", "Plant basil"))
		goals, err := s.ListMonthGoals(ctx, 2025, "May")
		require.NoError(t, err)
		assert.Equal(t, []store.PlanTask{{Task: "Plant basil", Done: true}}, goals)
		assert.ErrorIs(t, s.AddMonthGoal(ctx, 1900, "May", "x", false), store.ErrNotFound)

		day, err := store.ParseDate("2025-05-04")
		require.NoError(t, err)
		require.NoError(t, s.AddDiaryTask(ctx, 2025, "May", day, "Dentist", false))
		require.NoError(t, s.SetDiaryTaskState(ctx, 2025, "May", day, "Dentist", true))
		diary, err := s.ListDiary(ctx, 2025, "May")
		require.NoError(t, err)
		assert.Equal(t, []store.DiaryTask{{Date: "2025-05-04", Task: "Dentist", Completed: true}}, diary)

		assert.ErrorIs(t, s.SetDayColour(ctx, 2025, "May", day, "blue"), store.ErrInvalid)
		require.NoError(t, s.SetDayColour(ctx, 2025, "May", day, "#112233"))
		require.NoError(t, s.SetDayColour(ctx, 2025, "May", day, "#445566"))
		colours, err := s.ListDayColours(ctx, 2025, "May")
		require.NoError(t, err)
		assert.Equal(t, []store.DayColour{{ColourCode: "#445566", Date: "2025-05-04"}}, colours)

		require.NoError(t, s.SetDayPopup(ctx, 2025, "May", day, "Bring x-rays"))
		popups, err := s.ListDayPopups(ctx, 2025, "May")
		require.NoError(t, err)
		assert.Equal(t, []store.DayPopup{{PopupMessage: "Bring x-rays", Date: "2025-05-04"}}, popups)
		require.NoError(t, s.DeleteDayPopup(ctx, 2025, "May", day))
		assert.ErrorIs(t, s.DeleteDayPopup(ctx, 2025, "May", day), store.ErrNotFound)

		require.NoError(t, s.SetReadingLink(ctx, 2025, "May", "https://example.com/may"))
		details, err := s.MonthDetails(ctx, 2025, "May")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/may", details.ReadingLink)
	})

	t.Run("review", func(t *testing.T) {
		require.NoError(t, s.UpdateReview(ctx, 2025, []store.ReviewAnswer{
			{Question: defaults.ReviewQuestions[0], Answer: "Steady"},
			{Question: "11. Bonus question", Answer: "Yes"},
		}))
		review, err := s.Review(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, "Steady", review[0].Answer)
		assert.Equal(t, store.ReviewAnswer{Question: "11. Bonus question", Answer: "Yes"}, review[len(review)-1])

		_, err = s.Review(ctx, 1901)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("work", func(t *testing.T) {
		_, err := s.AddWorkPlace(ctx, "Office")
		require.NoError(t, err)
		_, err = s.AddWorkPlace(ctx, "Office")
		assert.ErrorIs(t, err, store.ErrConflict)

		_, err = s.AddWorkNote(ctx, "Office", "First")
		require.NoError(t, err)
		_, err = s.AddWorkNote(ctx, "Office", "Second")
		require.NoError(t, err)
		require.NoError(t, s.EditWorkNote(ctx, "Office", "First", "First, edited"))

		notes, err := s.ListWorkNotes(ctx, "Office")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "Second", notes[0].Text)

		require.NoError(t, s.RenameWorkPlace(ctx, "Office", "Studio"))
		_, err = s.ListWorkNotes(ctx, "Office")
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.DeleteWorkPlace(ctx, "Studio"))
		places, err := s.ListWorkPlaces(ctx)
		require.NoError(t, err)
		assert.Empty(t, places)
	})
}
