package api

import (
	"time"

	"github.com/fertitrack/fertitrack/internal/models"
)

// isoLayout matches JavaScript's Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

func isoTime(t time.Time) string { return t.UTC().Format(isoLayout) }

type articleDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toArticle(a models.Article) articleDTO {
	return articleDTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		CreatedAt: isoTime(a.CreatedAt),
		UpdatedAt: isoTime(a.UpdatedAt),
	}
}

func toArticles(in []models.Article) []articleDTO {
	out := make([]articleDTO, 0, len(in))
	for _, a := range in {
		out = append(out, toArticle(a))
	}
	return out
}

type bookmarkDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	ArticleID int64  `json:"articleId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type threadDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toThreads(in []models.ForumThread) []threadDTO {
	out := make([]threadDTO, 0, len(in))
	for _, t := range in {
		out = append(out, threadDTO{ID: t.ID, Title: t.Title, CreatedAt: isoTime(t.CreatedAt), UpdatedAt: isoTime(t.UpdatedAt)})
	}
	return out
}

type postDTO struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toPost(p models.ForumPost) postDTO {
	return postDTO{ID: p.ID, Content: p.Content, CreatedAt: isoTime(p.CreatedAt), UpdatedAt: isoTime(p.UpdatedAt)}
}

type habitDTO struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"userId"`
	Diet             string `json:"diet"`
	SleepPattern     string `json:"sleepPattern"`
	LifestyleChanges string `json:"lifestyleChanges"`
	LogDate          string `json:"logDate"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func toHabit(h models.Habit) habitDTO {
	return habitDTO{
		ID:               h.ID,
		UserID:           h.UserID,
		Diet:             h.Diet,
		SleepPattern:     h.SleepPattern,
		LifestyleChanges: h.LifestyleChanges,
		LogDate:          isoTime(h.LogDate),
		CreatedAt:        isoTime(h.CreatedAt),
		UpdatedAt:        isoTime(h.UpdatedAt),
	}
}

type semenAnalysisDTO struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	Volume       float64 `json:"volume"`
	Motility     float64 `json:"motility"`
	Morphology   float64 `json:"morphology"`
	AnalysisDate string  `json:"analysisDate"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toSemenAnalysis(a models.SemenAnalysis) semenAnalysisDTO {
	return semenAnalysisDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		Volume:       a.Volume,
		Motility:     a.Motility,
		Morphology:   a.Morphology,
		AnalysisDate: isoTime(a.AnalysisDate),
		CreatedAt:    isoTime(a.CreatedAt),
		UpdatedAt:    isoTime(a.UpdatedAt),
	}
}

type metricsDTO struct {
	Volume     float64 `json:"volume"`
	Motility   float64 `json:"motility"`
	Morphology float64 `json:"morphology"`
}

// trendPoint is one chart sample; Date is the UTC calendar day.
type trendPoint struct {
	Date       string  `json:"date"`
	Volume     float64 `json:"volume"`
	Motility   float64 `json:"motility"`
	Morphology float64 `json:"morphology"`
}

type recommendationDTO struct {
	ID                 int64  `json:"id"`
	Insight            string `json:"insight"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
	RecommendationDate string `json:"recommendationDate"`
}

type reminderDTO struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	Frequency    string `json:"frequency"`
	ReminderDate string `json:"reminderDate"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func toReminder(r models.Reminder) reminderDTO {
	return reminderDTO{
		ID:           r.ID,
		Type:         r.Type,
		Message:      r.Message,
		Frequency:    r.Frequency,
		ReminderDate: isoTime(r.ReminderDate),
		CreatedAt:    isoTime(r.CreatedAt),
		UpdatedAt:    isoTime(r.UpdatedAt),
	}
}
