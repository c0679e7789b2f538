package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fertitrack/fertitrack/internal/models"
)

func TestListArticles_Filters(t *testing.T) {
	e := newTestEnv(t)
	e.article(t, "Zinc and sperm health", "Zinc matters.", "Nutrition")
	e.article(t, "Eating well", "Leafy greens help sperm count.", "Nutrition")
	e.article(t, "Sleep hygiene", "Sleep and sperm quality.", "Lifestyle")
	e.article(t, "Protein", "Lean meats.", "Nutrition")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters", "", []string{"Zinc and sperm health", "Eating well", "Sleep hygiene", "Protein"}},
		{"category", "?category=Lifestyle", []string{"Sleep hygiene"}},
		{"category and keyword", "?category=Nutrition&keyword=sperm", []string{"Zinc and sperm health", "Eating well"}},
		{"keyword in content", "?keyword=greens", []string{"Eating well"}},
		{"no match", "?keyword=nothing-here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, e.handler, http.MethodGet, "/api/articles"+tt.query, nil)
			require.Equal(t, http.StatusOK, res.Code)
			assert.True(t, res.Success)
			assert.Equal(t, "Articles fetched successfully!", res.Message)

			var got []articleDTO
			res.decode(t, &got)
			var titles []string
			for _, a := range got {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestListArticles_EmptyIsArray(t *testing.T) {
	e := newTestEnv(t)
	res := do(t, e.handler, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestGetArticle(t *testing.T) {
	e := newTestEnv(t)
	a := e.article(t, "Zinc", "Zinc matters.", "Nutrition")

	res := do(t, e.handler, http.MethodGet, "/api/articles/"+itoa(a.ID), nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Article details fetched successfully!", res.Message)
	var got articleDTO
	res.decode(t, &got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Nutrition", got.Category)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, got.CreatedAt)

	res = do(t, e.handler, http.MethodGet, "/api/articles/9999", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Article not found", res.Message)
}

func TestReads_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	u := e.user(t, "u@example.com")
	e.article(t, "Zinc", "Zinc matters.", "Nutrition")
	e.thread(t, u.ID, "Hello")

	for _, path := range []string{"/api/articles", "/api/forums", "/api/qna/sessions", "/api/users/" + itoa(u.ID) + "/reminders"} {
		first := do(t, e.handler, http.MethodGet, path, nil)
		second := do(t, e.handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, first.Code, path)
		assert.Equal(t, first.Body, second.Body, path)
	}
}

func TestCreateBookmark(t *testing.T) {
	e := newTestEnv(t)
	u := e.user(t, "u@example.com")
	a := e.article(t, "Zinc", "Zinc matters.", "Nutrition")

	res := do(t, e.handler, http.MethodPost, "/api/bookmarks", map[string]any{"userId": u.ID, "articleId": a.ID})
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	assert.Equal(t, "Article bookmarked successfully!", res.Message)
	var b bookmarkDTO
	res.decode(t, &b)
	assert.Equal(t, u.ID, b.UserID)
	assert.Equal(t, a.ID, b.ArticleID)

	res = do(t, e.handler, http.MethodPost, "/api/bookmarks", map[string]any{"userId": u.ID, "articleId": 4242})
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Article not found", res.Message)
	assert.Equal(t, int64(1), e.count(t, &models.Bookmark{}))
}

func TestBookmarks_CallerScoped(t *testing.T) {
	e := newTestEnv(t)
	alice := e.user(t, "alice@example.com")
	bob := e.user(t, "bob@example.com")
	zinc := e.article(t, "Zinc", "Zinc matters.", "Nutrition")
	sleep := e.article(t, "Sleep", "Sleep well.", "Lifestyle")

	var aliceBookmark bookmarkDTO
	do(t, e.handler, http.MethodPost, "/api/bookmarks", map[string]any{"userId": alice.ID, "articleId": zinc.ID}).decode(t, &aliceBookmark)
	do(t, e.handler, http.MethodPost, "/api/bookmarks", map[string]any{"userId": bob.ID, "articleId": sleep.ID})

	t.Run("anonymous", func(t *testing.T) {
		res := do(t, e.handler, http.MethodGet, "/api/bookmarks", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		res = do(t, e.handler, http.MethodDelete, "/api/bookmarks/"+itoa(aliceBookmark.ID), nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("list with token", func(t *testing.T) {
		res := do(t, e.handler, http.MethodGet, "/api/bookmarks", nil, withToken(t, alice.ID))
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Bookmarked articles fetched successfully!", res.Message)
		var got []articleDTO
		res.decode(t, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "Zinc", got[0].Title)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		res := do(t, e.handler, http.MethodDelete, "/api/bookmarks/"+itoa(aliceBookmark.ID), nil, asUser(bob.ID))
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "Bookmark not found", res.Message)
		assert.Equal(t, int64(2), e.count(t, &models.Bookmark{}))
	})

	t.Run("owner deletes", func(t *testing.T) {
		res := do(t, e.handler, http.MethodDelete, "/api/bookmarks/"+itoa(aliceBookmark.ID), nil, asUser(alice.ID))
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Bookmark removed successfully!", res.Message)
		assert.Equal(t, int64(1), e.count(t, &models.Bookmark{}))

		res = do(t, e.handler, http.MethodDelete, "/api/bookmarks/"+itoa(aliceBookmark.ID), nil, asUser(alice.ID))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestForums(t *testing.T) {
	e := newTestEnv(t)
	u := e.user(t, "u@example.com")

	res := do(t, e.handler, http.MethodPost, "/api/forums", map[string]any{"title": "Diet tips", "userId": u.ID})
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	assert.Equal(t, "Forum thread created successfully!", res.Message)
	var th threadDTO
	res.decode(t, &th)
	assert.Equal(t, "Diet tips", th.Title)

	res = do(t, e.handler, http.MethodGet, "/api/forums", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var threads []threadDTO
	res.decode(t, &threads)
	require.Len(t, threads, 1)
	assert.Equal(t, th.ID, threads[0].ID)

	for _, content := range []string{"first", "second"} {
		res = do(t, e.handler, http.MethodPost, "/api/forums/"+itoa(th.ID)+"/posts", map[string]any{"userId": u.ID, "content": content})
		require.Equal(t, http.StatusCreated, res.Code, res.Body)
		assert.Equal(t, "Post created successfully!", res.Message)
	}

	res = do(t, e.handler, http.MethodGet, "/api/forums/"+itoa(th.ID)+"/posts", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var posts []postDTO
	res.decode(t, &posts)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Content)
	assert.Equal(t, "second", posts[1].Content)

	res = do(t, e.handler, http.MethodGet, "/api/forums/9999/posts", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestQnA(t *testing.T) {
	e := newTestEnv(t)
	u := e.user(t, "u@example.com")
	th := e.thread(t, u.ID, "Ask the doctor")

	res := do(t, e.handler, http.MethodGet, "/api/qna/sessions", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Q&A sessions fetched successfully!", res.Message)
	var sessions []threadDTO
	res.decode(t, &sessions)
	require.Len(t, sessions, 1)

	res = do(t, e.handler, http.MethodPost, "/api/qna/sessions/"+itoa(th.ID)+"/questions", map[string]any{"userId": u.ID, "content": "Does heat matter?"})
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	assert.Equal(t, "Question posted successfully!", res.Message)
	var p postDTO
	res.decode(t, &p)
	assert.Equal(t, "Does heat matter?", p.Content)

	res = do(t, e.handler, http.MethodGet, "/api/forums/"+itoa(th.ID)+"/posts", nil)
	var posts []postDTO
	res.decode(t, &posts)
	assert.Len(t, posts, 1)
}
