package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fertitrack/fertitrack/internal/store"
)

// GET /api/articles?category=&keyword=
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	articles, err := s.repo.ListArticles(r.Context(), store.ArticleFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Keyword:  strings.TrimSpace(q.Get("keyword")),
	})
	if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Articles fetched successfully!", toArticles(articles))
	return nil
}

// GET /api/articles/{articleId}
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "articleId")
	if err != nil {
		return badRequest("Invalid article ID")
	}
	a, err := s.repo.GetArticle(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Article not found")
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Article details fetched successfully!", toArticle(a))
	return nil
}
