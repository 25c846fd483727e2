package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/adanyl0v/go-todo-api/internal/models"
)

// dateLayouts are the accepted ISO 8601 forms. Layouts without an
// offset are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
	"20060102",
}

// registerValidators installs the custom rules on the validator engine
// and makes field errors report JSON names.
func registerValidators(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", engine)
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": validators.NotBlank,
		"task_status": func(fl validator.FieldLevel) bool {
			return models.IsValidStatus(strings.TrimSpace(fl.Field().String()))
		},
		"task_priority": func(fl validator.FieldLevel) bool {
			return models.IsValidPriority(strings.TrimSpace(fl.Field().String()))
		},
		"iso8601": func(fl validator.FieldLevel) bool {
			_, err := parseDate(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		err := v.RegisterValidation(tag, fn)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", tag, err)
		}
	}
	return nil
}

// parseDate parses an ISO 8601 date or date-time into UTC.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// fieldErrors converts a binding error into itemized field errors. It
// returns false if the error is not tied to individual fields.
func fieldErrors(err error) ([]fieldError, bool) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		errs := make([]fieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			errs = append(errs, fieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe.Field(), fe.Tag()),
			})
		}
		return errs, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		return []fieldError{{
			Field:   field,
			Message: validationMessage(field, "type"),
		}}, true
	}

	return nil, false
}

func validationMessage(field, tag string) string {
	switch field {
	case "email":
		return "Please enter a valid email address"
	case "username":
		return "Name is required"
	case "password":
		switch tag {
		case "required":
			return "Password is required"
		case "max":
			return "Password must be at most 255 characters long"
		}
		return "Password must be at least 7 characters long"
	case "title":
		return "Title is required"
	case "description":
		if tag == "type" {
			return "Description must be a string"
		}
		return "Description is required"
	case "type":
		return "Type is required"
	case "status":
		return "Status must be one of In Progress, Completed, Cancelled, or Backlog"
	case "priority":
		return "Priority must be one of Low, Medium, or High"
	case "expireDate":
		return "Expire date must be a valid date"
	case "time":
		return "Time must be a string"
	}
	return "Invalid value"
}
