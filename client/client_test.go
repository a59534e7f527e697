package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ridoystarlord/lifeplan/cache"
	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cache.Source = (*client.Client)(nil)

func newServer(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", 5*time.Second)
}

func TestAPIErrors(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/add_new_goal":
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"detail":"goal already exists"}`)
		case "/get_goals":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `not json`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Resource not found"}`)
		}
	})
	ctx := context.Background()

	err := c.Goals().Add(ctx, "Run")
	require.Error(t, err)
	assert.True(t, client.IsConflict(err))
	assert.EqualError(t, err, "server returned 409: goal already exists")

	err = c.Ping(ctx)
	assert.True(t, client.IsNotFound(err))
	assert.Contains(t, err.Error(), "Resource not found")

	_, err = c.Goals().List(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Detail)
	assert.False(t, client.IsNotFound(err))
}

func TestQueriesAndBodies(t *testing.T) {
	var gotBody map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/get_month_goals":
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "2026", r.URL.Query().Get("year"))
			assert.Equal(t, "may", r.URL.Query().Get("month"))
			_, _ = io.WriteString(w, `{"goals":[{"task":"Swim","done":true}]}`)
		case "/get_work_place_notes":
			assert.Equal(t, "Home Office", r.URL.Query().Get("work_name"))
			_, _ = io.WriteString(w, `{"notes":[{"text":"call","created_at":"2026-05-01T10:00:00Z"}]}`)
		case "/delete_month_popup_colour":
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = io.WriteString(w, `{"status":"success"}`)
		case "/add_work_note":
			_, _ = io.WriteString(w, `{"message":"ok","note_id":7}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
	})
	ctx := context.Background()

	goals, err := c.MonthGoals(ctx, 2026, "may")
	require.NoError(t, err)
	assert.Equal(t, []store.PlanTask{{Task: "Swim", Done: true}}, goals)

	notes, err := c.WorkNotes(ctx, "Home Office")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "call", notes[0].Text)
	assert.Equal(t, 2026, notes[0].CreatedAt.Year())

	require.NoError(t, c.DeleteDayColour(ctx, 2026, "may", "2026-05-03"))
	assert.Equal(t, map[string]any{"year": float64(2026), "month": "may", "date": "2026-05-03"}, gotBody)

	id, err := c.AddWorkNote(ctx, "Home Office", "call")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestUploadAndDownload(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/upload_best_in_month_image/2026":
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "sunset.png", hdr.Filename)
			assert.Equal(t, "png-bytes", string(data))
			_, _ = io.WriteString(w, `{"image_path":"/assets/yearly_plans/year/2026/sunset.png"}`)
		case "/assets/yearly_plans/year/2026/sunset.png":
			_, _ = io.WriteString(w, "png-bytes")
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	path, err := c.UploadBestImage(ctx, 2026, "sunset.png", bytes.NewBufferString("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/assets/yearly_plans/year/2026/sunset.png", path)

	var buf bytes.Buffer
	require.NoError(t, c.Download(ctx, path, &buf))
	assert.Equal(t, "png-bytes", buf.String())

	err = c.Download(ctx, "/assets/missing.png", io.Discard)
	assert.True(t, client.IsNotFound(err))
}
