package api

import (
	"errors"
	"net/http"

	"github.com/fertitrack/fertitrack/internal/identity"
	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

// POST /api/bookmarks {userId, articleId}
func (s *Server) createBookmark(w http.ResponseWriter, r *http.Request) error {
	var in bookmarkRequest
	if err := decodeJSON(w, r, &in, "Invalid user ID or article ID"); err != nil {
		return err
	}
	ctx := r.Context()
	if err := s.requireUser(ctx, *in.UserID); err != nil {
		return err
	}
	ok, err := s.repo.ArticleExists(ctx, *in.ArticleID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Article not found")
	}

	b := models.Bookmark{UserID: *in.UserID, ArticleID: *in.ArticleID}
	if err := s.repo.CreateBookmark(ctx, &b); err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Article bookmarked successfully!", bookmarkDTO{
		ID:        b.ID,
		UserID:    b.UserID,
		ArticleID: b.ArticleID,
		CreatedAt: isoTime(b.CreatedAt),
		UpdatedAt: isoTime(b.UpdatedAt),
	})
	return nil
}

// GET /api/bookmarks lists the caller's bookmarked articles.
func (s *Server) listBookmarks(w http.ResponseWriter, r *http.Request) error {
	userID, ok := identity.UserFrom(r.Context())
	if !ok {
		return errUnauthorized
	}
	articles, err := s.repo.BookmarkedArticles(r.Context(), userID)
	if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Bookmarked articles fetched successfully!", toArticles(articles))
	return nil
}

// DELETE /api/bookmarks/{bookmarkId}; only the caller's own bookmark.
func (s *Server) deleteBookmark(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "bookmarkId")
	if err != nil {
		return badRequest("Invalid bookmark ID")
	}
	userID, ok := identity.UserFrom(r.Context())
	if !ok {
		return errUnauthorized
	}
	if err := s.repo.DeleteBookmark(r.Context(), id, userID); errors.Is(err, store.ErrNotFound) {
		return notFound("Bookmark not found")
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Bookmark removed successfully!", nil)
	return nil
}
