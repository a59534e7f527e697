package client

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/ridoystarlord/lifeplan/store"
)

func (c *Client) ListYears(ctx context.Context) ([]store.Year, error) {
	var years []store.Year
	err := c.do(ctx, http.MethodGet, "/get_years", nil, nil, &years)
	return years, err
}

func (c *Client) AddYear(ctx context.Context, year int) (store.Year, error) {
	var y store.Year
	err := c.do(ctx, http.MethodPost, "/add_year", nil, M{"year": year}, &y)
	return y, err
}

func (c *Client) DeleteYear(ctx context.Context, year int) error {
	return c.do(ctx, http.MethodDelete, "/delete_year", nil, M{"year": year}, nil)
}

func (c *Client) RenameYear(ctx context.Context, oldYear, newYear int) error {
	return c.do(ctx, http.MethodPut, "/edit_year", nil, M{"old_year": oldYear, "new_year": newYear}, nil)
}

func (c *Client) Calendar(ctx context.Context, year int) ([]store.CalendarEvent, error) {
	var events []store.CalendarEvent
	err := c.do(ctx, http.MethodGet, "/get_calendar_tasks", yearQuery(year), nil, &events)
	return events, err
}

func (c *Client) AddCalendarEvent(ctx context.Context, year int, date, event string) error {
	return c.do(ctx, http.MethodPost, "/add_calendar_task", nil, M{"year": year, "date": date, "event": event}, nil)
}

func (c *Client) DeleteCalendarEvent(ctx context.Context, year int, date, event string) error {
	return c.do(ctx, http.MethodDelete, "/delete_calendar_task", nil, M{"year": year, "date": date, "event": event}, nil)
}

func (c *Client) YearlyPlans(ctx context.Context, year int) ([]store.PlanTask, error) {
	var out struct {
		Tasks []store.PlanTask `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/get_tasks_yearly_plans_inner", yearQuery(year), nil, &out)
	return out.Tasks, err
}

func (c *Client) AddYearlyPlan(ctx context.Context, year int, task string, completed bool) error {
	return c.do(ctx, http.MethodPost, "/add_task_yearly_plans_inner", nil, M{"year": year, "task": task, "completed": completed}, nil)
}

func (c *Client) SetYearlyPlanStatus(ctx context.Context, year int, task string, completed bool) error {
	return c.do(ctx, http.MethodPut, "/yearly_plans_inner_update_task_status", nil, M{"year": year, "task": task, "completed": completed}, nil)
}

func (c *Client) DeleteYearlyPlan(ctx context.Context, year int, task string) error {
	return c.do(ctx, http.MethodDelete, "/yearly_plans_inner_delete_task", nil, M{"year": year, "task": task}, nil)
}

func (c *Client) EditYearlyPlan(ctx context.Context, year int, oldTask, task string, completed bool) error {
	body := M{"year": year, "old_task": oldTask, "task": task, "completed": completed}
	return c.do(ctx, http.MethodPut, "/yearly_plans_inner_edit_task", nil, body, nil)
}

func (c *Client) BestInMonths(ctx context.Context, year int) ([]store.BestInMonth, error) {
	var items []store.BestInMonth
	err := c.do(ctx, http.MethodGet, "/get_best_in_months_data", yearQuery(year), nil, &items)
	return items, err
}

// UploadBestImage stores a best-in-month picture, replacing one with the same name.
func (c *Client) UploadBestImage(ctx context.Context, year int, filename string, r io.Reader) (string, error) {
	var out struct {
		ImagePath string `json:"image_path"`
	}
	err := c.upload(ctx, "/upload_best_in_month_image/"+strconv.Itoa(year), filename, r, &out)
	return out.ImagePath, err
}

func (c *Client) SetBestInMonth(ctx context.Context, year int, month, imagePath string) error {
	return c.do(ctx, http.MethodPost, "/add_best_in_months_data", nil, M{"year": year, "month": month, "image_path": imagePath}, nil)
}

func (c *Client) DeleteBestImage(ctx context.Context, year int, fileName string) error {
	return c.do(ctx, http.MethodPost, "/delete_best_in_month_image/"+strconv.Itoa(year), nil, M{"file_name": fileName}, nil)
}

func (c *Client) DeleteBestInMonth(ctx context.Context, year int, month string) error {
	return c.do(ctx, http.MethodPost, "/delete_best_in_months_task", nil, M{"year": year, "month": month}, nil)
}

func (c *Client) MonthStates(ctx context.Context, year int) ([]store.MonthState, error) {
	var states []store.MonthState
	err := c.do(ctx, http.MethodGet, "/get_months_states", yearQuery(year), nil, &states)
	return states, err
}

func (c *Client) SetMonthIcon(ctx context.Context, year int, month, iconPath string) error {
	return c.do(ctx, http.MethodPost, "/update_months_icon_status", nil, M{"year": year, "month_name": month, "icon_path": iconPath}, nil)
}

func (c *Client) Gratitude(ctx context.Context, year int) ([]store.GratitudeEntry, error) {
	var entries []store.GratitudeEntry
	err := c.do(ctx, http.MethodGet, "/get_gratitude_diary_entries", yearQuery(year), nil, &entries)
	return entries, err
}

func (c *Client) AddGratitude(ctx context.Context, year int, date, entry string) error {
	return c.do(ctx, http.MethodPost, "/task_add_gratitude_diary", nil, M{"year": year, "date": date, "entry": entry}, nil)
}

// EditGratitude replaces the entry of date, creating it when missing.
func (c *Client) EditGratitude(ctx context.Context, year int, date, entry string) error {
	return c.do(ctx, http.MethodPost, "/gratitude_diary_edit", nil, M{"year": year, "date": date, "entry": entry}, nil)
}

func (c *Client) DeleteGratitude(ctx context.Context, year int, date string) error {
	return c.do(ctx, http.MethodPost, "/gratitude_diary_delete", nil, M{"year": year, "date": date}, nil)
}

func (c *Client) HabitTracker(ctx context.Context, year int) (store.HabitWeeks, error) {
	var weeks store.HabitWeeks
	err := c.do(ctx, http.MethodGet, "/get_habit_tracker", yearQuery(year), nil, &weeks)
	return weeks, err
}

func (c *Client) SetHabitWeekStart(ctx context.Context, year int, date string) error {
	return c.do(ctx, http.MethodPost, "/update_start_date", nil, M{"year": year, "date": date}, nil)
}

func (c *Client) SetHabitState(ctx context.Context, year int, day, task string, completed bool) error {
	body := M{"year": year, "day": day, "task": task, "completed": completed}
	return c.do(ctx, http.MethodPost, "/update_habit_tracker_task_state", nil, body, nil)
}

func (c *Client) ResetHabitStates(ctx context.Context, year int) error {
	return c.do(ctx, http.MethodPost, "/refresh_habit_tracker_states", nil, M{"year": year}, nil)
}

func (c *Client) EditHabitDay(ctx context.Context, year int, startDate, day string, tasks []string) error {
	if tasks == nil {
		tasks = []string{}
	}
	body := M{"year": year, "start_date": startDate, "day": day, "tasks": tasks}
	return c.do(ctx, http.MethodPost, "/edit_habit_tracker", nil, body, nil)
}

func (c *Client) Review(ctx context.Context, year int) ([]store.ReviewAnswer, error) {
	var answers []store.ReviewAnswer
	err := c.do(ctx, http.MethodGet, "/get_review", yearQuery(year), nil, &answers)
	return answers, err
}

func (c *Client) UpdateReview(ctx context.Context, year int, answers []store.ReviewAnswer) error {
	return c.do(ctx, http.MethodPost, "/update_review", nil, M{"year": year, "reviews": answers}, nil)
}
