package store

import (
	"context"
	"fmt"

	"github.com/fertitrack/fertitrack/internal/models"
)

// CreateHabit stores a habit log. A zero LogDate becomes now.
func (s *Store) CreateHabit(ctx context.Context, h *models.Habit) error {
	if h.LogDate.IsZero() {
		h.LogDate = now()
	}
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("creating habit: %w", err)
	}
	return nil
}

func (s *Store) ListHabits(ctx context.Context, userID int64) ([]models.Habit, error) {
	var out []models.Habit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing habits of user %d: %w", userID, err)
	}
	return out, nil
}

// CreateSemenAnalysis stores a lab result. A zero AnalysisDate becomes now.
func (s *Store) CreateSemenAnalysis(ctx context.Context, a *models.SemenAnalysis) error {
	if a.AnalysisDate.IsZero() {
		a.AnalysisDate = now()
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating semen analysis: %w", err)
	}
	return nil
}

// SemenAnalyses lists the user's analyses by analysis date, ascending when
// asc is set and newest first otherwise.
func (s *Store) SemenAnalyses(ctx context.Context, userID int64, asc bool) ([]models.SemenAnalysis, error) {
	order := "analysis_date DESC, id DESC"
	if asc {
		order = "analysis_date ASC, id ASC"
	}
	var out []models.SemenAnalysis
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing semen analyses of user %d: %w", userID, err)
	}
	return out, nil
}

// LatestSemenAnalysis returns the most recent analysis or ErrNotFound.
func (s *Store) LatestSemenAnalysis(ctx context.Context, userID int64) (models.SemenAnalysis, error) {
	var a models.SemenAnalysis
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("analysis_date DESC, id DESC")
	if err := first(q, &a); err != nil {
		return a, fmt.Errorf("latest semen analysis of user %d: %w", userID, err)
	}
	return a, nil
}

func (s *Store) ListRecommendations(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	var out []models.Recommendation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recommendation_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing recommendations of user %d: %w", userID, err)
	}
	return out, nil
}

// CreateRecommendation is used by the seed command; the API never writes
// recommendations.
func (s *Store) CreateRecommendation(ctx context.Context, r *models.Recommendation) error {
	if r.RecommendationDate.IsZero() {
		r.RecommendationDate = now()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("creating recommendation: %w", err)
	}
	return nil
}

func (s *Store) CountRecommendations(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Recommendation{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting recommendations of user %d: %w", userID, err)
	}
	return n, nil
}
