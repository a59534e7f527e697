package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/api"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/config"
	"github.com/ridoystarlord/lifeplan/internal/pgtest"
	"github.com/ridoystarlord/lifeplan/loader"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, target, body string, out any) int {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI(t *testing.T) {
	pool := pgtest.NewMigratedPool(t)
	files, err := assets.New(t.TempDir())
	require.NoError(t, err)
	srv := api.New(store.New(pool, loader.MustBuiltin()), files, config.Default().Server)
	c := client{t: t, app: srv.App()}

	t.Run("goals round trip", func(t *testing.T) {
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/add_new_goal", `{"title":"Read 20 books"}`, nil))
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/update_goal_status", `{"title":"Read 20 books","completed":true}`, nil))

		var goals []store.ChecklistItem
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_goals", "", &goals))
		assert.Equal(t, []store.ChecklistItem{{Text: "Read 20 books", Completed: true}}, goals)

		var failure map[string]string
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/delete_goal", `{"title":"Nope"}`, &failure))
		assert.Contains(t, failure["detail"], "not found")
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/add_new_course", `{"title":""}`, nil))
	})

	t.Run("wishlist removal uses the stored image", func(t *testing.T) {
		for _, name := range []string{"tent.png", "lamp.png"} {
			_, err := files.Save(assets.WishlistDir, name, strings.NewReader("png"), false)
			require.NoError(t, err)
		}
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/add_wishlist_item",
			`{"title":"Tent","image_path":"/assets/lists_for_life/wishlist/tent.png"}`, nil))

		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/remove_wishlist_item",
			`{"title":"Tent","image_path":"lamp.png"}`, nil))

		names, err := files.Names(assets.WishlistDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"lamp"}, names)

		var items []store.WishlistItem
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_wishlist_items", "", &items))
		assert.Empty(t, items)
	})

	t.Run("years", func(t *testing.T) {
		var created map[string]any
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/add_year", `{"year":2026}`, &created))
		assert.EqualValues(t, 2026, created["year"])
		assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/add_year", `{"year":2026}`, nil))

		var years []store.Year
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_years", "", &years))
		require.Len(t, years, 1)

		var review []store.ReviewAnswer
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_review?year=2026", "", &review))
		assert.Len(t, review, 10)
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/get_review?year=1800", "", nil))
	})

	t.Run("habit week", func(t *testing.T) {
		body := `{"year":2026,"start_date":"2026-01-01","day":"Sunday","tasks":["Rest :3","Walk"]}`
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/edit_habit_tracker", body, nil))

		var weeks store.HabitWeeks
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_habit_tracker?year=2026", "", &weeks))
		assert.Equal(t, []store.HabitTask{{Task: "Rest :3"}, {Task: "Walk"}}, weeks["Week starting 2026-01-01"]["Sunday"])

		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/edit_habit_tracker",
			`{"year":2026,"start_date":"2026-01-01","day":"Caturday","tasks":[]}`, nil))
	})

	t.Run("month page", func(t *testing.T) {
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/add_month_diary_task",
			`{"year":2026,"month":"June","task":"Dentist","date":"2026-06-03"}`, nil))

		var diary struct {
			Tasks []store.DiaryTask `json:"tasks"`
		}
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/get_month_diary_tasks", `{"year":2026,"month":"June"}`, &diary))
		assert.Equal(t, []store.DiaryTask{{Date: "2026-06-03", Task: "Dentist"}}, diary.Tasks)

		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_month_diary_tasks?year=2026&month=June", "", &diary))
		assert.Len(t, diary.Tasks, 1)

		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/add_month_popup_colour",
			`{"year":2026,"month":"June","date":"2026-06-03","colour_code":"green"}`, nil))

		var details store.MonthDetails
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_months_ui_data?year=2026&month=June", "", &details))
		assert.Contains(t, details.Banner, "june")
	})

	t.Run("year rename and delete", func(t *testing.T) {
		_, err := files.Save(assets.YearDir(2026), "june.png", strings.NewReader("x"), true)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/edit_year", `{"old_year":2026,"new_year":2028}`, nil))
		_, err = files.Open(assets.YearDir(2028), "june.png")
		require.NoError(t, err)

		var diary struct {
			Tasks []store.DiaryTask `json:"tasks"`
		}
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/get_month_diary_tasks?year=2028&month=June", "", &diary))
		assert.Equal(t, "2028-06-03", diary.Tasks[0].Date)

		require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/delete_year", `{"year":2028}`, nil))
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/delete_year", `{"year":2028}`, nil))
		_, err = files.Open(assets.YearDir(2028), "june.png")
		assert.ErrorIs(t, err, assets.ErrNotFound)
	})
}
