package client

import (
	"context"
	"net/http"

	"github.com/ridoystarlord/lifeplan/store"
)

func (c *Client) MonthDetails(ctx context.Context, year int, month string) (store.MonthDetails, error) {
	var d store.MonthDetails
	err := c.do(ctx, http.MethodGet, "/get_months_ui_data", monthQuery(year, month), nil, &d)
	return d, err
}

func (c *Client) SetReadingLink(ctx context.Context, year int, month, link string) error {
	return c.do(ctx, http.MethodPost, "/update_reading_link", nil, M{"year": year, "month": month, "new_link": link}, nil)
}

func (c *Client) MonthGoals(ctx context.Context, year int, month string) ([]store.PlanTask, error) {
	var out struct {
		Goals []store.PlanTask `json:"goals"`
	}
	err := c.do(ctx, http.MethodGet, "/get_month_goals", monthQuery(year, month), nil, &out)
	return out.Goals, err
}

func (c *Client) AddMonthGoal(ctx context.Context, year int, month, task string, completed bool) error {
	body := M{"year": year, "month": month, "task": task, "completed": completed}
	return c.do(ctx, http.MethodPost, "/add_month_goal", nil, body, nil)
}

func (c *Client) SetMonthGoalState(ctx context.Context, year int, month, task string, done bool) error {
	body := M{"year": year, "month": month, "task": task, "done": done}
	return c.do(ctx, http.MethodPost, "/toggle_month_goal_state", nil, body, nil)
}

func (c *Client) DeleteMonthGoal(ctx context.Context, year int, month, task string) error {
	return c.do(ctx, http.MethodPost, "/delete_month_goal", nil, M{"year": year, "month": month, "task": task}, nil)
}

func (c *Client) RenameMonthGoal(ctx context.Context, year int, month, oldTask, newTask string) error {
	body := M{"year": year, "month": month, "old_task": oldTask, "new_task": newTask}
	return c.do(ctx, http.MethodPost, "/update_month_goal", nil, body, nil)
}

func (c *Client) MonthDiary(ctx context.Context, year int, month string) ([]store.DiaryTask, error) {
	var out struct {
		Tasks []store.DiaryTask `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/get_month_diary_tasks", monthQuery(year, month), nil, &out)
	return out.Tasks, err
}

func (c *Client) AddDiaryTask(ctx context.Context, year int, month, date, task string, completed bool) error {
	body := M{"year": year, "month": month, "date": date, "task": task, "completed": completed}
	return c.do(ctx, http.MethodPost, "/add_month_diary_task", nil, body, nil)
}

func (c *Client) SetDiaryTaskState(ctx context.Context, year int, month, date, task string, done bool) error {
	body := M{"year": year, "month": month, "date": date, "task": task, "done": done}
	return c.do(ctx, http.MethodPost, "/toggle_month_diary_task", nil, body, nil)
}

func (c *Client) DeleteDiaryTask(ctx context.Context, year int, month, date, task string) error {
	body := M{"year": year, "month": month, "date": date, "task": task}
	return c.do(ctx, http.MethodPost, "/delete_month_diary_task", nil, body, nil)
}

func (c *Client) RenameDiaryTask(ctx context.Context, year int, month, date, oldTask, newTask string) error {
	body := M{"year": year, "month": month, "date": date, "old_task": oldTask, "new_task": newTask}
	return c.do(ctx, http.MethodPost, "/update_month_diary_task", nil, body, nil)
}

func (c *Client) DayColours(ctx context.Context, year int, month string) ([]store.DayColour, error) {
	var colours []store.DayColour
	err := c.do(ctx, http.MethodGet, "/get_popup_colour", monthQuery(year, month), nil, &colours)
	return colours, err
}

func (c *Client) DayPopups(ctx context.Context, year int, month string) ([]store.DayPopup, error) {
	var popups []store.DayPopup
	err := c.do(ctx, http.MethodGet, "/get_popup_data", monthQuery(year, month), nil, &popups)
	return popups, err
}

func (c *Client) SetDayColour(ctx context.Context, year int, month, date, colourCode string) error {
	body := M{"year": year, "month": month, "date": date, "colour_code": colourCode}
	return c.do(ctx, http.MethodPost, "/add_month_popup_colour", nil, body, nil)
}

func (c *Client) SetDayPopup(ctx context.Context, year int, month, date, message string) error {
	body := M{"year": year, "month": month, "date": date, "popup_message": message}
	return c.do(ctx, http.MethodPost, "/add_month_popup_data", nil, body, nil)
}

func (c *Client) DeleteDayColour(ctx context.Context, year int, month, date string) error {
	return c.do(ctx, http.MethodDelete, "/delete_month_popup_colour", nil, M{"year": year, "month": month, "date": date}, nil)
}

func (c *Client) DeleteDayPopup(ctx context.Context, year int, month, date string) error {
	return c.do(ctx, http.MethodDelete, "/delete_month_popup_data", nil, M{"year": year, "month": month, "date": date}, nil)
}
