package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"go.uber.org/zap"

	"github.com/fertitrack/fertitrack/internal/store"
)

const maxBodyBytes = 1 << 20

// envelope wraps every response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// apiError is an error already mapped to a status and a caller-safe message.
type apiError struct {
	status  int
	message string
	fields  []fieldError
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%d %s", e.status, e.message)
}

func badRequest(msg string) error { return &apiError{status: http.StatusBadRequest, message: msg} }
func notFound(msg string) error   { return &apiError{status: http.StatusNotFound, message: msg} }

func invalidInput(msg string, fields ...fieldError) error {
	return &apiError{status: http.StatusBadRequest, message: msg, fields: fields}
}

var (
	errUnauthorized = &apiError{status: http.StatusUnauthorized, message: "Unauthorized"}
	errForbidden    = &apiError{status: http.StatusForbidden, message: "Forbidden"}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Message: msg})
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle is the single error boundary of every endpoint. Mapped errors are
// written as-is; everything else is logged under op and hidden behind a 500.
func (s *Server) handle(op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var ae *apiError
		switch {
		case errors.As(err, &ae):
			env := envelope{Message: ae.message}
			if len(ae.fields) > 0 {
				env.Data = map[string]any{"errors": ae.fields}
			}
			writeJSON(w, ae.status, env)
		case errors.Is(err, store.ErrNotFound):
			errorJSON(w, http.StatusNotFound, "Not found")
		default:
			s.log.Error(op,
				zap.Error(err),
				zap.String("request_id", requestIDFrom(r.Context())),
			)
			errorJSON(w, http.StatusInternalServerError, "Internal server error")
		}
	}
}

// decodeJSON reads a bounded JSON body into v. Type mismatches are reported
// against the offending field.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, msg string) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return invalidInput(msg, fieldError{Field: typeErr.Field, Message: "must be " + kindName(typeErr.Type)})
		case errors.Is(err, io.EOF):
			return invalidInput(msg, fieldError{Field: "body", Message: "is required"})
		default:
			return invalidInput(msg, fieldError{Field: "body", Message: "must be valid JSON"})
		}
	}
	return validateBody(v, msg)
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.Kind().String()
	}
}
