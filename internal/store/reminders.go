package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fertitrack/fertitrack/internal/models"
)

func (s *Store) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	var out []models.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reminder_date ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing reminders of user %d: %w", userID, err)
	}
	return out, nil
}

func (s *Store) CreateReminder(ctx context.Context, r *models.Reminder) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("creating reminder: %w", err)
	}
	return nil
}

// GetReminder loads a reminder by id regardless of owner; callers authorise.
func (s *Store) GetReminder(ctx context.Context, id int64) (models.Reminder, error) {
	var r models.Reminder
	if err := first(s.db.WithContext(ctx).Where("id = ?", id), &r); err != nil {
		return r, fmt.Errorf("getting reminder %d: %w", id, err)
	}
	return r, nil
}

// ReminderFields are the replaceable fields of a reminder.
type ReminderFields struct {
	Type         string
	Message      string
	Frequency    string
	ReminderDate time.Time
}

// UpdateReminder replaces the fields of r in place. The write is filtered by
// both r.ID and r.UserID; ErrNotFound when that pair matches no row.
func (s *Store) UpdateReminder(ctx context.Context, r *models.Reminder, f ReminderFields) error {
	ts := now()
	res := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ? AND user_id = ?", r.ID, r.UserID).
		Updates(map[string]any{
			"type":          f.Type,
			"message":       f.Message,
			"frequency":     f.Frequency,
			"reminder_date": f.ReminderDate,
			"updated_at":    ts,
		})
	if res.Error != nil {
		return fmt.Errorf("updating reminder %d: %w", r.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating reminder %d: %w", r.ID, ErrNotFound)
	}
	r.Type = f.Type
	r.Message = f.Message
	r.Frequency = f.Frequency
	r.ReminderDate = f.ReminderDate
	r.UpdatedAt = ts
	return nil
}

// DeleteReminder removes reminder id owned by userID. ErrNotFound when
// nothing matched.
func (s *Store) DeleteReminder(ctx context.Context, id, userID int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Reminder{})
	if res.Error != nil {
		return fmt.Errorf("deleting reminder %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleting reminder %d: %w", id, ErrNotFound)
	}
	return nil
}
