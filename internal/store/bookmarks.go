package store

import (
	"context"
	"fmt"

	"github.com/fertitrack/fertitrack/internal/models"
)

func (s *Store) CreateBookmark(ctx context.Context, b *models.Bookmark) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("creating bookmark: %w", err)
	}
	return nil
}

// BookmarkedArticles joins the user's bookmarks to their articles, oldest
// bookmark first.
func (s *Store) BookmarkedArticles(ctx context.Context, userID int64) ([]models.Article, error) {
	var out []models.Article
	err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("articles.id, articles.title, articles.content, articles.category, articles.created_at, articles.updated_at").
		Joins("JOIN bookmarks ON bookmarks.article_id = articles.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at ASC, bookmarks.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks of user %d: %w", userID, err)
	}
	return out, nil
}

// DeleteBookmark removes the bookmark only if userID owns it. It returns
// ErrNotFound when nothing matched.
func (s *Store) DeleteBookmark(ctx context.Context, id, userID int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("deleting bookmark %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleting bookmark %d: %w", id, ErrNotFound)
	}
	return nil
}
