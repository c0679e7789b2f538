package store

import (
	"context"
	"fmt"

	"github.com/fertitrack/fertitrack/internal/models"
)

// ListThreads backs both the forum listing and Q&A sessions.
func (s *Store) ListThreads(ctx context.Context) ([]models.ForumThread, error) {
	var out []models.ForumThread
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	return out, nil
}

func (s *Store) ThreadExists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exists(ctx, &models.ForumThread{}, id)
	if err != nil {
		return false, fmt.Errorf("checking thread %d: %w", id, err)
	}
	return ok, nil
}

func (s *Store) CreateThread(ctx context.Context, t *models.ForumThread) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("creating thread: %w", err)
	}
	return nil
}

func (s *Store) ListPosts(ctx context.Context, threadID int64) ([]models.ForumPost, error) {
	var out []models.ForumPost
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing posts of thread %d: %w", threadID, err)
	}
	return out, nil
}

func (s *Store) CreatePost(ctx context.Context, p *models.ForumPost) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	return nil
}
