package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/config"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server without a database; only routes that fail
// before reaching the store may be exercised.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	files, err := assets.New(t.TempDir())
	require.NoError(t, err)
	return New(nil, files, config.Default().Server)
}

func send(t *testing.T, s *Server, req *http.Request) (int, map[string]any, http.Header) {
	t.Helper()
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &body), "body: %s", data)
	}
	return resp.StatusCode, body, resp.Header
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestCheckServerConnection(t *testing.T) {
	s := newTestServer(t)
	code, body, header := send(t, s, httptest.NewRequest(http.MethodGet, "/check_server_connection", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Server is running", body["message"])
	assert.NotEmpty(t, header.Get(fiber.HeaderXRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/check_server_connection", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	_, _, header := send(t, s, req)
	assert.Equal(t, "abc-123", header.Get(fiber.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	code, body, _ := send(t, s, httptest.NewRequest(http.MethodGet, "/no_such_route", nil))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, map[string]any{"error": "Resource not found"}, body)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"malformed body", jsonRequest(http.MethodPost, "/add_new_goal", `{"title":`)},
		{"bad date", jsonRequest(http.MethodPost, "/add_calendar_task", `{"year":2025,"date":"31.12.2025","event":"NYE"}`)},
		{"bad habit start", jsonRequest(http.MethodPost, "/edit_habit_tracker", `{"year":2025,"start_date":"soon","day":"Monday"}`)},
		{"bad year param", uploadRequest(t, "/upload_best_in_month_image/abc", "a.png", "x")},
		{"missing upload", jsonRequest(http.MethodPost, "/upload_image", `{}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := send(t, s, tt.req)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, body["detail"])
		})
	}
}

func TestWishlistImageUpload(t *testing.T) {
	s := newTestServer(t)

	code, body, _ := send(t, s, uploadRequest(t, "/upload_image", "bike.png", "png-bytes"))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "bike.png", body["filename"])
	assert.Equal(t, "/assets/lists_for_life/wishlist/bike.png", body["image_path"])

	code, _, _ = send(t, s, uploadRequest(t, "/upload_image", "bike.png", "again"))
	assert.Equal(t, http.StatusConflict, code)

	code, _, _ = send(t, s, uploadRequest(t, "/upload_image", "notes.txt", "text"))
	assert.Equal(t, http.StatusBadRequest, code)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/get_image/bike.png", nil), -1)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(data))

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/assets/lists_for_life/wishlist/bike.png", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, _, _ = send(t, s, httptest.NewRequest(http.MethodGet, "/get_image/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBestInMonthImages(t *testing.T) {
	s := newTestServer(t)

	code, body, _ := send(t, s, uploadRequest(t, "/upload_best_in_month_image/2025", "march.jpg", "v1"))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "/assets/yearly_plans/year/2025/march.jpg", body["image_path"])

	code, _, _ = send(t, s, uploadRequest(t, "/upload_best_in_month_image/2025", "march.jpg", "v2"))
	assert.Equal(t, http.StatusOK, code, "best-in-month uploads overwrite")

	code, _, _ = send(t, s, jsonRequest(http.MethodPost, "/delete_best_in_month_image/2025", `{"file_name":"march.jpg"}`))
	assert.Equal(t, http.StatusOK, code)
	code, _, _ = send(t, s, jsonRequest(http.MethodPost, "/delete_best_in_month_image/2025", `{"file_name":"march.jpg"}`))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBannersAndIcons(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"winter.png", "autumn.jpg"} {
		_, err := s.files.Save(assets.BannersDir, name, strings.NewReader("x"), false)
		require.NoError(t, err)
	}

	code, body, _ := send(t, s, httptest.NewRequest(http.MethodGet, "/banners", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"autumn", "winter"}, body["banners"])

	code, body, _ = send(t, s, httptest.NewRequest(http.MethodGet, "/icons", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["icons"])
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("year 1: %w", store.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", assets.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("year 1: %w", store.ErrConflict), http.StatusConflict},
		{assets.ErrExists, http.StatusConflict},
		{fmt.Errorf("bad: %w", store.ErrInvalid), http.StatusBadRequest},
		{fiber.NewError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		code, detail := classify(tt.err)
		assert.Equal(t, tt.want, code, tt.err.Error())
		if code == http.StatusInternalServerError {
			assert.Equal(t, "internal server error", detail)
		} else {
			assert.NotEmpty(t, detail)
		}
	}
}
