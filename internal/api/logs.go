package api

import (
	"errors"
	"net/http"

	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

// Goal templates. These are not derived from the analysis values.
const (
	goalMotility   = "Increase motility by 5% in the next month"
	goalMorphology = "Maintain morphology above 4%"
)

// POST /api/users/{userId}/habits
func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	var in habitRequest
	if err := decodeJSON(w, r, &in, "Missing required fields"); err != nil {
		return err
	}
	if err := s.requireUser(r.Context(), userID); err != nil {
		return err
	}

	h := models.Habit{
		UserID:           userID,
		Diet:             in.Diet,
		SleepPattern:     in.SleepPattern,
		LifestyleChanges: in.LifestyleChanges,
	}
	if in.LogDate != "" {
		h.LogDate, _ = parseDate(in.LogDate) // validated by schema
	}
	if err := s.repo.CreateHabit(r.Context(), &h); err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Habit logged successfully!", toHabit(h))
	return nil
}

// GET /api/users/{userId}/habits
func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	habits, err := s.repo.ListHabits(r.Context(), userID)
	if err != nil {
		return err
	}
	out := make([]habitDTO, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabit(h))
	}
	writeOK(w, http.StatusOK, "Habits fetched successfully!", out)
	return nil
}

// POST /api/users/{userId}/semenAnalyses
func (s *Server) createSemenAnalysis(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	var in semenAnalysisRequest
	if err := decodeJSON(w, r, &in, "Invalid input data"); err != nil {
		return err
	}
	if err := s.requireUser(r.Context(), userID); err != nil {
		return err
	}

	a := models.SemenAnalysis{
		UserID:     userID,
		Volume:     *in.Volume,
		Motility:   *in.Motility,
		Morphology: *in.Morphology,
	}
	if in.AnalysisDate != "" {
		a.AnalysisDate, _ = parseDate(in.AnalysisDate)
	}
	if err := s.repo.CreateSemenAnalysis(r.Context(), &a); err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Semen analysis report logged successfully!", toSemenAnalysis(a))
	return nil
}

// GET /api/users/{userId}/semenAnalyses, newest first.
func (s *Server) listSemenAnalyses(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	rows, err := s.repo.SemenAnalyses(r.Context(), userID, false)
	if err != nil {
		return err
	}
	out := make([]semenAnalysisDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toSemenAnalysis(a))
	}
	writeOK(w, http.StatusOK, "Semen analyses fetched successfully!", out)
	return nil
}

// GET /api/users/{userId}/semenMetrics returns the latest analysis values.
func (s *Server) semenMetrics(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	a, err := s.repo.LatestSemenAnalysis(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("No semen analysis metrics found for the user")
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Semen metrics fetched successfully!", metricsDTO{
		Volume:     a.Volume,
		Motility:   a.Motility,
		Morphology: a.Morphology,
	})
	return nil
}

// GET /api/users/{userId}/semenTrends returns every analysis as a chart
// point, oldest first.
func (s *Server) semenTrends(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	rows, err := s.repo.SemenAnalyses(r.Context(), userID, true)
	if err != nil {
		return err
	}
	out := make([]trendPoint, 0, len(rows))
	for _, a := range rows {
		out = append(out, trendPoint{
			Date:       a.AnalysisDate.UTC().Format("2006-01-02"),
			Volume:     a.Volume,
			Motility:   a.Motility,
			Morphology: a.Morphology,
		})
	}
	writeOK(w, http.StatusOK, "Semen trends fetched successfully!", out)
	return nil
}

// GET /api/users/{userId}/personalizedGoals
func (s *Server) personalizedGoals(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	ctx := r.Context()
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	_, err = s.repo.LatestSemenAnalysis(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		writeOK(w, http.StatusOK, "No historical data available", map[string]any{})
		return nil
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Personalized goals fetched successfully!", map[string]string{
		"goal1": goalMotility,
		"goal2": goalMorphology,
	})
	return nil
}

// GET /api/users/{userId}/recommendations
func (s *Server) listRecommendations(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	recs, err := s.repo.ListRecommendations(r.Context(), userID)
	if err != nil {
		return err
	}
	out := make([]recommendationDTO, 0, len(recs))
	for _, rc := range recs {
		out = append(out, recommendationDTO{
			ID:                 rc.ID,
			Insight:            rc.Insight,
			CreatedAt:          isoTime(rc.CreatedAt),
			UpdatedAt:          isoTime(rc.UpdatedAt),
			RecommendationDate: isoTime(rc.RecommendationDate),
		})
	}
	writeOK(w, http.StatusOK, "Recommendations fetched successfully!", out)
	return nil
}
