// Package api serves the JSON HTTP surface. Every endpoint answers with the
// {success, message, data} envelope.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/fertitrack/fertitrack/internal/identity"
	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

// Repository is the persistence the handlers need. *store.Store implements it.
type Repository interface {
	UserExists(ctx context.Context, id int64) (bool, error)

	ListArticles(ctx context.Context, f store.ArticleFilter) ([]models.Article, error)
	GetArticle(ctx context.Context, id int64) (models.Article, error)
	ArticleExists(ctx context.Context, id int64) (bool, error)

	CreateBookmark(ctx context.Context, b *models.Bookmark) error
	BookmarkedArticles(ctx context.Context, userID int64) ([]models.Article, error)
	DeleteBookmark(ctx context.Context, id, userID int64) error

	ListThreads(ctx context.Context) ([]models.ForumThread, error)
	ThreadExists(ctx context.Context, id int64) (bool, error)
	CreateThread(ctx context.Context, t *models.ForumThread) error
	ListPosts(ctx context.Context, threadID int64) ([]models.ForumPost, error)
	CreatePost(ctx context.Context, p *models.ForumPost) error

	CreateHabit(ctx context.Context, h *models.Habit) error
	ListHabits(ctx context.Context, userID int64) ([]models.Habit, error)

	CreateSemenAnalysis(ctx context.Context, a *models.SemenAnalysis) error
	SemenAnalyses(ctx context.Context, userID int64, asc bool) ([]models.SemenAnalysis, error)
	LatestSemenAnalysis(ctx context.Context, userID int64) (models.SemenAnalysis, error)

	ListRecommendations(ctx context.Context, userID int64) ([]models.Recommendation, error)

	ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, r *models.Reminder) error
	GetReminder(ctx context.Context, id int64) (models.Reminder, error)
	UpdateReminder(ctx context.Context, r *models.Reminder, f store.ReminderFields) error
	DeleteReminder(ctx context.Context, id, userID int64) error
}

var _ Repository = (*store.Store)(nil)

type Server struct {
	repo     Repository
	verifier *identity.Verifier
	log      *zap.Logger
}

func New(repo Repository, verifier *identity.Verifier, logger *zap.Logger) *Server {
	return &Server{repo: repo, verifier: verifier, log: logger}
}

// Routes builds the router. origins feeds the CORS allow-list.
func (s *Server) Routes(origins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", requestIDHeader, identity.DevHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(finishOptions)
	r.Use(s.verifier.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorJSON(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorJSON(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/articles", s.handle("list articles", s.listArticles))
		r.Get("/articles/{articleId}", s.handle("get article", s.getArticle))

		r.Post("/bookmarks", s.handle("create bookmark", s.createBookmark))
		r.Get("/bookmarks", s.handle("list bookmarks", s.listBookmarks))
		r.Delete("/bookmarks/{bookmarkId}", s.handle("delete bookmark", s.deleteBookmark))

		r.Get("/forums", s.handle("list threads", s.listThreads))
		r.Post("/forums", s.handle("create thread", s.createThread))
		r.Get("/forums/{threadId}/posts", s.handle("list posts", s.listPosts))
		r.Post("/forums/{threadId}/posts", s.handle("create post", s.createPost))

		r.Get("/qna/sessions", s.handle("list sessions", s.listSessions))
		r.Post("/qna/sessions/{sessionId}/questions", s.handle("create question", s.createQuestion))

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Use(s.requireSelf)

			r.Get("/habits", s.handle("list habits", s.listHabits))
			r.Post("/habits", s.handle("create habit", s.createHabit))

			r.Get("/semenAnalyses", s.handle("list semen analyses", s.listSemenAnalyses))
			r.Post("/semenAnalyses", s.handle("create semen analysis", s.createSemenAnalysis))
			r.Get("/semenMetrics", s.handle("semen metrics", s.semenMetrics))
			r.Get("/semenTrends", s.handle("semen trends", s.semenTrends))
			r.Get("/personalizedGoals", s.handle("personalized goals", s.personalizedGoals))

			r.Get("/recommendations", s.handle("list recommendations", s.listRecommendations))

			r.Get("/reminders", s.handle("list reminders", s.listReminders))
			r.Post("/reminders", s.handle("create reminder", s.createReminder))
			r.Put("/reminders/{reminderId}", s.handle("update reminder", s.updateReminder))
			r.Delete("/reminders/{reminderId}", s.handle("delete reminder", s.deleteReminder))
		})
	})

	return r
}

// pathID parses an integer path parameter.
func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// requireUser checks that the user exists before a dependent write.
func (s *Server) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("User not found")
	}
	return nil
}
