package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ridoystarlord/lifeplan/store"
)

func (c *Client) WorkPlaces(ctx context.Context) ([]string, error) {
	var out struct {
		Buttons []string `json:"buttons"`
	}
	err := c.do(ctx, http.MethodGet, "/get_work_place", nil, nil, &out)
	return out.Buttons, err
}

func (c *Client) AddWorkPlace(ctx context.Context, name string) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/add_work_place", nil, M{"work_name": name}, &out)
	return out.ID, err
}

func (c *Client) DeleteWorkPlace(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/delete_work_place", nil, M{"work_name": name}, nil)
}

func (c *Client) RenameWorkPlace(ctx context.Context, oldName, newName string) error {
	return c.do(ctx, http.MethodPost, "/update_work_place_title", nil, M{"old_work_name": oldName, "new_work_name": newName}, nil)
}

func (c *Client) WorkNotes(ctx context.Context, place string) ([]store.WorkNote, error) {
	var out struct {
		Notes []store.WorkNote `json:"notes"`
	}
	err := c.do(ctx, http.MethodGet, "/get_work_place_notes", url.Values{"work_name": {place}}, nil, &out)
	return out.Notes, err
}

func (c *Client) AddWorkNote(ctx context.Context, place, text string) (int, error) {
	var out struct {
		NoteID int `json:"note_id"`
	}
	err := c.do(ctx, http.MethodPost, "/add_work_note", nil, M{"work_name": place, "note_text": text}, &out)
	return out.NoteID, err
}

func (c *Client) DeleteWorkNote(ctx context.Context, place, text string) error {
	return c.do(ctx, http.MethodPost, "/delete_work_place_note", nil, M{"work_name": place, "note_text": text}, nil)
}

func (c *Client) EditWorkNote(ctx context.Context, place, oldText, newText string) error {
	body := M{"work_name": place, "old_text": oldText, "new_text": newText}
	return c.do(ctx, http.MethodPost, "/edit_work_place_note", nil, body, nil)
}
