package api

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Request schemas. Pointer fields distinguish "missing" from zero.

type bookmarkRequest struct {
	UserID    *int64 `json:"userId" validate:"required"`
	ArticleID *int64 `json:"articleId" validate:"required"`
}

type threadRequest struct {
	Title  string `json:"title" validate:"required"`
	UserID *int64 `json:"userId" validate:"required"`
}

type postRequest struct {
	UserID  *int64 `json:"userId" validate:"required,min=1"`
	Content string `json:"content" validate:"required"`
}

type habitRequest struct {
	Diet             string `json:"diet" validate:"required"`
	SleepPattern     string `json:"sleepPattern" validate:"required"`
	LifestyleChanges string `json:"lifestyleChanges" validate:"required"`
	LogDate          string `json:"logDate" validate:"omitempty,flexdate"`
}

type semenAnalysisRequest struct {
	Volume       *float64 `json:"volume" validate:"required,gte=0"`
	Motility     *float64 `json:"motility" validate:"required,gte=0,lte=100"`
	Morphology   *float64 `json:"morphology" validate:"required,gte=0,lte=100"`
	AnalysisDate string   `json:"analysisDate" validate:"omitempty,flexdate"`
}

type reminderRequest struct {
	Type         string `json:"type" validate:"required"`
	Message      string `json:"message" validate:"required"`
	Frequency    string `json:"frequency" validate:"required"`
	ReminderDate string `json:"reminderDate" validate:"required,flexdate"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("flexdate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// validateBody checks v against its schema and lists every violation.
func validateBody(v any, msg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return invalidInput(msg, fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "flexdate":
		return "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
	default:
		return "is invalid"
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts RFC 3339, datetime-local form values and calendar
// dates. Zone-less values are taken as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, l := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(l, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
