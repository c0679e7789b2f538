// Package store is the data-access layer. Each method is one logical
// persistence operation scoped by the request context.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fertitrack/fertitrack/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a store bound to one transaction. fn's error
// rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (s *Store) exists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UserExists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exists(ctx, &models.User{}, id)
	if err != nil {
		return false, fmt.Errorf("checking user %d: %w", id, err)
	}
	return ok, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// EnsureUser returns the user with email, creating it if absent.
func (s *Store) EnsureUser(ctx context.Context, email, displayName string) (models.User, error) {
	u := models.User{Email: email, DisplayName: displayName}
	err := s.db.WithContext(ctx).
		Where(models.User{Email: email}).
		Attrs(models.User{DisplayName: displayName}).
		FirstOrCreate(&u).Error
	if err != nil {
		return u, fmt.Errorf("ensuring user %s: %w", email, err)
	}
	return u, nil
}

// first loads one row into dst, mapping a miss to ErrNotFound.
func first(q *gorm.DB, dst any) error {
	err := q.First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// likeEscaper makes a user keyword match literally inside LIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// now is the server clock; tests may replace it.
var now = func() time.Time { return time.Now().UTC() }
