package api

import (
	"context"
	"net/http"

	"github.com/fertitrack/fertitrack/internal/models"
)

// GET /api/forums
func (s *Server) listThreads(w http.ResponseWriter, r *http.Request) error {
	threads, err := s.repo.ListThreads(r.Context())
	if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Forum threads fetched successfully!", toThreads(threads))
	return nil
}

// POST /api/forums {title, userId}
func (s *Server) createThread(w http.ResponseWriter, r *http.Request) error {
	var in threadRequest
	if err := decodeJSON(w, r, &in, "Invalid input fields"); err != nil {
		return err
	}
	if err := s.requireUser(r.Context(), *in.UserID); err != nil {
		return err
	}

	t := models.ForumThread{Title: in.Title, UserID: *in.UserID}
	if err := s.repo.CreateThread(r.Context(), &t); err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Forum thread created successfully!", threadDTO{
		ID:        t.ID,
		Title:     t.Title,
		CreatedAt: isoTime(t.CreatedAt),
		UpdatedAt: isoTime(t.UpdatedAt),
	})
	return nil
}

// GET /api/forums/{threadId}/posts
func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) error {
	threadID, err := pathID(r, "threadId")
	if err != nil {
		return badRequest("Invalid thread ID")
	}
	posts, err := s.repo.ListPosts(r.Context(), threadID)
	if err != nil {
		return err
	}
	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPost(p))
	}
	writeOK(w, http.StatusOK, "Posts fetched successfully!", out)
	return nil
}

// POST /api/forums/{threadId}/posts {userId, content}
func (s *Server) createPost(w http.ResponseWriter, r *http.Request) error {
	threadID, err := pathID(r, "threadId")
	if err != nil {
		return badRequest("Invalid thread ID")
	}
	p, err := s.addPost(w, r, threadID, "Thread not found")
	if err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Post created successfully!", toPost(p))
	return nil
}

// GET /api/qna/sessions. Sessions are forum threads.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) error {
	threads, err := s.repo.ListThreads(r.Context())
	if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Q&A sessions fetched successfully!", toThreads(threads))
	return nil
}

// POST /api/qna/sessions/{sessionId}/questions {userId, content}
func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) error {
	sessionID, err := pathID(r, "sessionId")
	if err != nil {
		return badRequest("Invalid session ID")
	}
	p, err := s.addPost(w, r, sessionID, "Session not found")
	if err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Question posted successfully!", toPost(p))
	return nil
}

// addPost validates the body, checks author then thread, and writes the post.
func (s *Server) addPost(w http.ResponseWriter, r *http.Request, threadID int64, missingThread string) (models.ForumPost, error) {
	var in postRequest
	if err := decodeJSON(w, r, &in, "Missing required fields"); err != nil {
		return models.ForumPost{}, err
	}
	ctx := r.Context()
	if err := s.requireUser(ctx, *in.UserID); err != nil {
		return models.ForumPost{}, err
	}
	if err := s.requireThread(ctx, threadID, missingThread); err != nil {
		return models.ForumPost{}, err
	}

	p := models.ForumPost{ThreadID: threadID, UserID: *in.UserID, Content: in.Content}
	if err := s.repo.CreatePost(ctx, &p); err != nil {
		return models.ForumPost{}, err
	}
	return p, nil
}

func (s *Server) requireThread(ctx context.Context, id int64, msg string) error {
	ok, err := s.repo.ThreadExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(msg)
	}
	return nil
}
