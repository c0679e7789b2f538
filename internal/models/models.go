// Package models holds the persisted records. Handlers never serialise these
// directly; they project them into response DTOs.
package models

import "time"

// User is the tenant root. Profile and credentials live with the identity
// provider; only what other records reference is stored here.
type User struct {
	ID          int64  `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex;size:320;not null"`
	DisplayName string `gorm:"size:120"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Article struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"type:text;not null"`
	Content   string `gorm:"type:text;not null"`
	Category  string `gorm:"index;size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Bookmark struct {
	ID        int64    `gorm:"primaryKey"`
	UserID    int64    `gorm:"index:idx_bookmark_user_article,priority:1;not null"`
	ArticleID int64    `gorm:"index:idx_bookmark_user_article,priority:2;not null"`
	User      *User    `gorm:"foreignKey:UserID"`
	Article   *Article `gorm:"foreignKey:ArticleID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ForumThread struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"type:text;not null"`
	UserID    int64  `gorm:"index;not null"`
	User      *User  `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ForumPost struct {
	ID        int64        `gorm:"primaryKey"`
	ThreadID  int64        `gorm:"index;not null"`
	UserID    int64        `gorm:"index;not null"`
	Content   string       `gorm:"type:text;not null"`
	Thread    *ForumThread `gorm:"foreignKey:ThreadID"`
	User      *User        `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Habit struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           int64     `gorm:"index:idx_habit_user_date,priority:1;not null"`
	Diet             string    `gorm:"type:text;not null"`
	SleepPattern     string    `gorm:"type:text;not null"`
	LifestyleChanges string    `gorm:"type:text;not null"`
	LogDate          time.Time `gorm:"index:idx_habit_user_date,priority:2;not null"`
	User             *User     `gorm:"foreignKey:UserID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SemenAnalysis is one lab result. Motility and morphology are percentages.
type SemenAnalysis struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"index:idx_semen_user_date,priority:1;not null"`
	Volume       float64   `gorm:"not null"` // mL
	Motility     float64   `gorm:"not null"`
	Morphology   float64   `gorm:"not null"`
	AnalysisDate time.Time `gorm:"index:idx_semen_user_date,priority:2;not null"`
	User         *User     `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Recommendation rows are written by an external generation process (or the
// seed command); the API only reads them.
type Recommendation struct {
	ID                 int64     `gorm:"primaryKey"`
	UserID             int64     `gorm:"index;not null"`
	Insight            string    `gorm:"type:text;not null"`
	RecommendationDate time.Time `gorm:"not null"`
	User               *User     `gorm:"foreignKey:UserID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Reminder struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"index;not null"`
	Type         string    `gorm:"size:64;not null"`
	Message      string    `gorm:"type:text;not null"`
	Frequency    string    `gorm:"size:64;not null"`
	ReminderDate time.Time `gorm:"not null"`
	User         *User     `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Article{},
		&Bookmark{},
		&ForumThread{},
		&ForumPost{},
		&Habit{},
		&SemenAnalysis{},
		&Recommendation{},
		&Reminder{},
	}
}
