package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

func TestInvalidIdentifier_NoPersistence(t *testing.T) {
	h := newHandler(t, panicRepo{})
	tests := []struct {
		method, path string
		body         any
		wantMsg      string
	}{
		{http.MethodGet, "/api/articles/abc", nil, "Invalid article ID"},
		{http.MethodDelete, "/api/bookmarks/abc", nil, "Invalid bookmark ID"},
		{http.MethodGet, "/api/forums/x/posts", nil, "Invalid thread ID"},
		{http.MethodPost, "/api/forums/x/posts", map[string]any{"userId": 1, "content": "hi"}, "Invalid thread ID"},
		{http.MethodPost, "/api/qna/sessions/x/questions", map[string]any{"userId": 1, "content": "hi"}, "Invalid session ID"},
		{http.MethodGet, "/api/users/me/reminders", nil, "Invalid user ID"},
		{http.MethodPost, "/api/users/1.5/habits", map[string]any{"diet": "a", "sleepPattern": "b", "lifestyleChanges": "c"}, "Invalid user ID"},
		{http.MethodGet, "/api/users/abc/semenTrends", nil, "Invalid user ID"},
		{http.MethodGet, "/api/users/abc/personalizedGoals", nil, "Invalid user ID"},
		{http.MethodPut, "/api/users/1/reminders/nope", map[string]any{}, "Invalid user ID or reminder ID"},
		{http.MethodDelete, "/api/users/1/reminders/nope", nil, "Invalid user ID or reminder ID"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			res := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, res.Code, res.Body)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}

func TestInvalidInput_NoPersistence(t *testing.T) {
	h := newHandler(t, panicRepo{})
	tests := []struct {
		name       string
		path       string
		body       any
		wantFields []string
	}{
		{"bookmark missing article", "/api/bookmarks", map[string]any{"userId": 1}, []string{"articleId"}},
		{"bookmark string id", "/api/bookmarks", map[string]any{"userId": "1", "articleId": 2}, []string{"userId"}},
		{"thread empty title", "/api/forums", map[string]any{"title": "", "userId": 1}, []string{"title"}},
		{"post zero user", "/api/forums/1/posts", map[string]any{"userId": 0, "content": "x"}, []string{"userId"}},
		{"question missing content", "/api/qna/sessions/1/questions", map[string]any{"userId": 1}, []string{"content"}},
		{"habit missing all", "/api/users/1/habits", map[string]any{}, []string{"diet", "sleepPattern", "lifestyleChanges"}},
		{"habit bad date", "/api/users/1/habits", map[string]any{"diet": "a", "sleepPattern": "b", "lifestyleChanges": "c", "logDate": "yesterday"}, []string{"logDate"}},
		{"analysis string volume", "/api/users/1/semenAnalyses", map[string]any{"volume": "3.5", "motility": 45, "morphology": 6}, []string{"volume"}},
		{"analysis missing motility", "/api/users/1/semenAnalyses", map[string]any{"volume": 3.5, "morphology": 6}, []string{"motility"}},
		{"analysis motility over 100", "/api/users/1/semenAnalyses", map[string]any{"volume": 3.5, "motility": 140, "morphology": 6}, []string{"motility"}},
		{"reminder missing date", "/api/users/1/reminders", map[string]any{"type": "a", "message": "b", "frequency": "daily"}, []string{"reminderDate"}},
		{"malformed json", "/api/users/1/reminders", `{"type":`, []string{"body"}},
		{"empty body", "/api/forums", "", []string{"body"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, res.Code, res.Body)
			assert.False(t, res.Success)
			var got []string
			for _, fe := range res.fieldErrors(t) {
				got = append(got, fe.Field)
				assert.NotEmpty(t, fe.Message)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestUpdateReminder_InvalidBody_NoPersistence(t *testing.T) {
	h := newHandler(t, panicRepo{})
	res := do(t, h, http.MethodPut, "/api/users/1/reminders/2", map[string]any{"type": "a"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Missing required fields", res.Message)
}

func TestCreate_UnknownUser_NoWrite(t *testing.T) {
	e := newTestEnv(t)
	owner := e.user(t, "owner@example.com")
	a := e.article(t, "A", "c", "Nutrition")
	th := e.thread(t, owner.ID, "T")
	const ghost = 999

	tests := []struct {
		name  string
		path  string
		body  any
		model any
	}{
		{"bookmark", "/api/bookmarks", map[string]any{"userId": ghost, "articleId": a.ID}, &models.Bookmark{}},
		{"thread", "/api/forums", map[string]any{"title": "New", "userId": ghost}, &models.ForumThread{}},
		{"post", "/api/forums/" + itoa(th.ID) + "/posts", map[string]any{"userId": ghost, "content": "x"}, &models.ForumPost{}},
		{"question", "/api/qna/sessions/" + itoa(th.ID) + "/questions", map[string]any{"userId": ghost, "content": "x"}, &models.ForumPost{}},
		{"habit", "/api/users/999/habits", map[string]any{"diet": "a", "sleepPattern": "b", "lifestyleChanges": "c"}, &models.Habit{}},
		{"analysis", "/api/users/999/semenAnalyses", map[string]any{"volume": 3.5, "motility": 45, "morphology": 6}, &models.SemenAnalysis{}},
		{"reminder", "/api/users/999/reminders", map[string]any{"type": "a", "message": "b", "frequency": "daily", "reminderDate": "2024-05-01"}, &models.Reminder{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.count(t, tt.model)
			res := do(t, e.handler, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, res.Code, res.Body)
			assert.False(t, res.Success)
			assert.Equal(t, "User not found", res.Message)
			assert.Equal(t, before, e.count(t, tt.model))
		})
	}
}

func TestCreatePost_UnknownThread_NoWrite(t *testing.T) {
	e := newTestEnv(t)
	u := e.user(t, "u@example.com")

	res := do(t, e.handler, http.MethodPost, "/api/forums/404/posts", map[string]any{"userId": u.ID, "content": "hello"})
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Thread not found", res.Message)

	res = do(t, e.handler, http.MethodPost, "/api/qna/sessions/404/questions", map[string]any{"userId": u.ID, "content": "hello"})
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Session not found", res.Message)

	assert.Zero(t, e.count(t, &models.ForumPost{}))
}

// failingRepo simulates a persistence failure carrying internal detail.
type failingRepo struct{ Repository }

var errDriver = errors.New(`pq: password authentication failed for user "admin"`)

func (failingRepo) ListArticles(context.Context, store.ArticleFilter) ([]models.Article, error) {
	return nil, errDriver
}

func (failingRepo) UserExists(context.Context, int64) (bool, error) {
	return false, errDriver
}

func TestInternalError_NotExposed(t *testing.T) {
	h := newHandler(t, failingRepo{})

	res := do(t, h, http.MethodGet, "/api/articles", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "Internal server error", res.Message)
	assert.NotContains(t, res.Body, "password")
	assert.Empty(t, res.Data)

	res = do(t, h, http.MethodPost, "/api/users/1/reminders", map[string]any{
		"type": "a", "message": "b", "frequency": "daily", "reminderDate": "2024-05-01",
	})
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.NotContains(t, res.Body, "pq:")
}

func TestPanic_Recovered(t *testing.T) {
	h := newHandler(t, panicRepo{})
	res := do(t, h, http.MethodGet, "/api/forums", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "Internal server error", res.Message)
}

func TestUnknownRoute(t *testing.T) {
	h := newHandler(t, panicRepo{})
	res := do(t, h, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.False(t, res.Success)

	res = do(t, h, http.MethodPatch, "/api/forums", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}

func TestHealthzAndRequestID(t *testing.T) {
	h := newHandler(t, panicRepo{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, authorizeOwner(3, 3))
	assert.ErrorIs(t, authorizeOwner(3, 4), errNotOwner)
}
