package httpapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cesargomez89/praiseteam/internal/app"
	"github.com/cesargomez89/praiseteam/internal/auth"
	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/logger"
	"github.com/cesargomez89/praiseteam/internal/schedule"
	"github.com/cesargomez89/praiseteam/internal/store"
	"github.com/cesargomez89/praiseteam/internal/youtube"
)

type envelope struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data"`
	Error      string              `json:"error"`
	Message    string              `json:"message"`
	Details    []map[string]string `json:"details"`
	Pagination *struct {
		Page       int  `json:"page"`
		Limit      int  `json:"limit"`
		Total      int  `json:"total"`
		TotalPages int  `json:"total_pages"`
		HasNext    bool `json:"has_next"`
	} `json:"pagination"`
}

type testServer struct {
	router http.Handler
	token  string
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("praise123"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewService("admin", string(hash), "0123456789abcdef0123456789abcdef")
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, logger.Discard())
}

func newTestServerWithLogger(t *testing.T, log *logger.Logger) *testServer {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	enricher := youtube.NewEnricher(youtube.NewClient("http://127.0.0.1:0", "", nil), nil, log)
	weeks := app.NewWeekService(schedule.NewStore(db, log), app.NewSongEnricher(enricher), log)
	authService := newAuthService(t)

	h := NewHandler(weeks, enricher, authService, log)
	token, _, err := authService.Login("admin", "praise123")
	require.NoError(t, err)

	return &testServer{router: NewRouter(h), token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(auth.SessionCookie(s.token, false))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func weekBody(date string) map[string]any {
	return map[string]any{
		"date":            date,
		"worship_leader":  "Ana",
		"serving_members": []string{"Ana", "Luis"},
		"songs": []map[string]any{{
			"title":       "Great Is Thy Faithfulness",
			"youtube_url": "https://youtu.be/dQw4w9WgXcQ",
			"lead_singer": "Ana",
			"type":        "Opening",
			"order":       0,
		}},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestWeekLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Week created successfully", env.Message)

	var created domain.Week
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "January 2025", created.Month)
	require.Len(t, created.Songs, 1)
	assert.Equal(t, "dQw4w9WgXcQ", created.Songs[0].YouTubeID)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", created.Songs[0].Thumbnail)
	assert.Equal(t, "0:00", created.Songs[0].Duration)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", created.Songs[0].EmbedURL)

	rec, env = s.do(t, http.MethodGet, "/api/songs/"+created.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched domain.Week
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, []string{"Ana", "Luis"}, fetched.ServingMembers)

	rec, env = s.do(t, http.MethodPut, "/api/songs/"+created.ID, map[string]any{"attire": "Formal"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.Week
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Formal", updated.Attire)
	assert.Equal(t, "Ana", updated.WorshipLeader)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	rec, _ = s.do(t, http.MethodDelete, "/api/songs/"+created.ID, nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/songs/"+created.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Week not found", env.Error)

	rec, _ = s.do(t, http.MethodDelete, "/api/songs/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWeek_Errors(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	body := weekBody("2025-01-05")
	body["songs"] = []map[string]any{}
	rec, env = s.do(t, http.MethodPost, "/api/songs", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Error)
	require.NotEmpty(t, env.Details)
	assert.Equal(t, "songs", env.Details[0]["field"])
	assert.Equal(t, "songs: at least one song is required", env.Message)

	rec, _ = s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListWeeks_FiltersAndPagination(t *testing.T) {
	s := newTestServer(t)
	for d := 5; d <= 26; d += 7 {
		rec, _ := s.do(t, http.MethodPost, "/api/songs", weekBody(fmt.Sprintf("2025-01-%02d", d)), true)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec, _ := s.do(t, http.MethodPost, "/api/songs", weekBody("2025-02-02"), true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/songs?month=January+2025&page=2&limit=3", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var weeks []domain.Week
	require.NoError(t, json.Unmarshal(env.Data, &weeks))
	require.Len(t, weeks, 1)
	assert.Equal(t, "2025-01-05", weeks[0].Date.Format("2006-01-02"))
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 4, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.False(t, env.Pagination.HasNext)

	rec, env = s.do(t, http.MethodGet, "/api/songs?search=faithfulness", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &weeks))
	assert.Len(t, weeks, 5)
	assert.Equal(t, "2025-02-02", weeks[0].Date.Format("2006-01-02"))

	rec, env = s.do(t, http.MethodGet, "/api/songs?worship_leader=Nobody", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestListWeeks_PageBeyondRange(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/songs?page=9223372036854775807", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Total)
	assert.False(t, env.Pagination.HasNext)
}

func TestUpcomingWeeks_BadCount(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/api/weeks/upcoming?count=0", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "count", env.Details[0]["field"])
}

func TestVideoMetadata(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/youtube/metadata", map[string]string{"youtube_url": "https://www.youtube.com/watch?v=ABC12345678"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var meta domain.VideoMetadata
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.Equal(t, "ABC12345678", meta.ID)
	assert.Equal(t, "YouTube Video", meta.Title)

	rec, env = s.do(t, http.MethodPost, "/api/youtube/metadata", map[string]string{"youtube_url": "https://example.com/video"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"admin","password":"praise123"}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.AdminCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec2, env := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong-password"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, "Invalid credentials", env.Error)

	rec2, _ = s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "ad", "password": "x"}, false)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)

	rec2, _ = s.do(t, http.MethodGet, "/api/auth/verify", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)

	rec2, _ = s.do(t, http.MethodPost, "/api/auth/logout", nil, false)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, -1, rec2.Result().Cookies()[0].MaxAge)
}

type failingWeeks struct {
	WeekService
	err error
}

func (f failingWeeks) List(ctx context.Context, filter app.WeekFilter) ([]domain.Week, error) {
	return nil, f.err
}

func (f failingWeeks) Get(ctx context.Context, id string) (*domain.Week, error) {
	return nil, f.err
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream", fmt.Errorf("read rows: %w: %w", domain.ErrUpstreamUnavailable, errors.New("quota")), http.StatusBadGateway},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid", fmt.Errorf("%w: bad", domain.ErrInvalidInput), http.StatusBadRequest},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(failingWeeks{err: tt.err}, nil, newAuthService(t), logger.Discard())
			router := NewRouter(h)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/songs/week-1", nil))
			assert.Equal(t, tt.want, rec.Code)

			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.NotContains(t, env.Error, "quota")
		})
	}
}

func TestAdminMutationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServerWithLogger(t, logger.New(logger.Config{Level: "info", Format: "text", Output: &buf}))

	rec, env := s.do(t, http.MethodPost, "/api/songs", weekBody("2025-01-05"), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Week
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ = s.do(t, http.MethodDelete, "/api/songs/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `msg="Week created"`)
	assert.Contains(t, out, `msg="Week deleted"`)
	assert.Contains(t, out, "admin=admin")
	assert.Contains(t, out, "week_id="+created.ID)
}
