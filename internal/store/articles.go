package store

import (
	"context"
	"fmt"

	"github.com/fertitrack/fertitrack/internal/models"
)

// ArticleFilter narrows ListArticles. Empty fields impose no constraint.
type ArticleFilter struct {
	Category string
	Keyword  string
}

func (s *Store) ListArticles(ctx context.Context, f ArticleFilter) ([]models.Article, error) {
	q := s.db.WithContext(ctx).Model(&models.Article{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Keyword != "" {
		p := containsPattern(f.Keyword)
		q = q.Where(`(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`, p, p)
	}

	var out []models.Article
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return out, nil
}

func (s *Store) GetArticle(ctx context.Context, id int64) (models.Article, error) {
	var a models.Article
	if err := first(s.db.WithContext(ctx).Where("id = ?", id), &a); err != nil {
		return a, fmt.Errorf("getting article %d: %w", id, err)
	}
	return a, nil
}

func (s *Store) ArticleExists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exists(ctx, &models.Article{}, id)
	if err != nil {
		return false, fmt.Errorf("checking article %d: %w", id, err)
	}
	return ok, nil
}

func (s *Store) CreateArticle(ctx context.Context, a *models.Article) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating article: %w", err)
	}
	return nil
}

// EnsureArticle creates an article unless one with the same title exists.
func (s *Store) EnsureArticle(ctx context.Context, a *models.Article) error {
	err := s.db.WithContext(ctx).
		Where(models.Article{Title: a.Title}).
		Attrs(models.Article{Content: a.Content, Category: a.Category}).
		FirstOrCreate(a).Error
	if err != nil {
		return fmt.Errorf("ensuring article %q: %w", a.Title, err)
	}
	return nil
}
