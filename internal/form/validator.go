package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	validate.RegisterValidation("isodate", validateISODate)
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses an ISO-8601 calendar date, or the date part of an ISO-8601
// timestamp. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, fmt.Errorf("invalid ISO-8601 date %q", s)
}

// Messages overrides the message of a failed rule, keyed by "field.tag" or by
// "field" for every rule of that field.
type Messages map[string]string

// Validate checks every field of s against its validate tags and reports all
// failures in field order.
func Validate(s any, msgs Messages) Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Kind: InvalidFormat, Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		out = append(out, FieldError{
			Field:   field,
			Kind:    kindOf(fe.Tag()),
			Message: message(msgs, field, fe.Tag(), fe.Param()),
		})
	}
	return out
}

func kindOf(tag string) Kind {
	switch tag {
	case "required":
		return MissingField
	case "isodate":
		return InvalidDate
	default:
		return InvalidFormat
	}
}

func message(msgs Messages, field, tag, param string) string {
	if m, ok := msgs[field+"."+tag]; ok {
		return m
	}
	if m, ok := msgs[field]; ok {
		return m
	}

	label := Label(field)
	switch tag {
	case "required":
		return fmt.Sprintf("%s must be specified", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "alphanum", "alphanumunicode":
		return fmt.Sprintf("%s has non-alphanumeric characters", label)
	case "isodate":
		return fmt.Sprintf("Invalid %s", strings.ToLower(label))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, param)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// Label turns a field name such as "date_of_birth" into "Date of birth".
func Label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
