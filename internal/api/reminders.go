package api

import (
	"errors"
	"net/http"

	"github.com/fertitrack/fertitrack/internal/models"
	"github.com/fertitrack/fertitrack/internal/store"
)

var errNotOwner = errors.New("caller does not own the resource")

// authorizeOwner reports whether caller may mutate a row owned by owner.
func authorizeOwner(owner, caller int64) error {
	if owner != caller {
		return errNotOwner
	}
	return nil
}

// GET /api/users/{userId}/reminders
func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	rems, err := s.repo.ListReminders(r.Context(), userID)
	if err != nil {
		return err
	}
	out := make([]reminderDTO, 0, len(rems))
	for _, rm := range rems {
		out = append(out, toReminder(rm))
	}
	writeOK(w, http.StatusOK, "Reminders fetched successfully!", out)
	return nil
}

// POST /api/users/{userId}/reminders
func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "userId")
	if err != nil {
		return badRequest("Invalid user ID")
	}
	var in reminderRequest
	if err := decodeJSON(w, r, &in, "Missing required fields"); err != nil {
		return err
	}
	if err := s.requireUser(r.Context(), userID); err != nil {
		return err
	}

	when, _ := parseDate(in.ReminderDate)
	rm := models.Reminder{
		UserID:       userID,
		Type:         in.Type,
		Message:      in.Message,
		Frequency:    in.Frequency,
		ReminderDate: when,
	}
	if err := s.repo.CreateReminder(r.Context(), &rm); err != nil {
		return err
	}
	writeOK(w, http.StatusCreated, "Reminder created successfully!", toReminder(rm))
	return nil
}

func reminderPath(r *http.Request) (userID, reminderID int64, err error) {
	if userID, err = pathID(r, "userId"); err != nil {
		return 0, 0, badRequest("Invalid user ID or reminder ID")
	}
	if reminderID, err = pathID(r, "reminderId"); err != nil {
		return 0, 0, badRequest("Invalid user ID or reminder ID")
	}
	return userID, reminderID, nil
}

// ownedReminder loads the reminder and checks userID owns it. A reminder
// owned by someone else is reported exactly like a missing one.
func (s *Server) ownedReminder(r *http.Request, userID, reminderID int64) (models.Reminder, error) {
	rm, err := s.repo.GetReminder(r.Context(), reminderID)
	if errors.Is(err, store.ErrNotFound) {
		return rm, notFound("Reminder not found")
	} else if err != nil {
		return rm, err
	}
	if err := authorizeOwner(rm.UserID, userID); err != nil {
		return rm, notFound("Reminder not found")
	}
	return rm, nil
}

// PUT /api/users/{userId}/reminders/{reminderId} replaces all fields.
func (s *Server) updateReminder(w http.ResponseWriter, r *http.Request) error {
	userID, reminderID, err := reminderPath(r)
	if err != nil {
		return err
	}
	var in reminderRequest
	if err := decodeJSON(w, r, &in, "Missing required fields"); err != nil {
		return err
	}
	rm, err := s.ownedReminder(r, userID, reminderID)
	if err != nil {
		return err
	}

	when, _ := parseDate(in.ReminderDate)
	err = s.repo.UpdateReminder(r.Context(), &rm, store.ReminderFields{
		Type:         in.Type,
		Message:      in.Message,
		Frequency:    in.Frequency,
		ReminderDate: when,
	})
	if errors.Is(err, store.ErrNotFound) {
		// deleted between the ownership read and the write
		return notFound("Reminder not found")
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Reminder updated successfully!", toReminder(rm))
	return nil
}

// DELETE /api/users/{userId}/reminders/{reminderId}
func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) error {
	userID, reminderID, err := reminderPath(r)
	if err != nil {
		return err
	}
	if _, err := s.ownedReminder(r, userID, reminderID); err != nil {
		return err
	}
	if err := s.repo.DeleteReminder(r.Context(), reminderID, userID); errors.Is(err, store.ErrNotFound) {
		return notFound("Reminder not found")
	} else if err != nil {
		return err
	}
	writeOK(w, http.StatusOK, "Reminder deleted successfully!", map[string]any{})
	return nil
}
