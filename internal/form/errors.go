package form

import (
	"fmt"
	"strings"
)

// Kind classifies a field-level validation failure.
type Kind int

const (
	MissingField Kind = iota + 1
	InvalidFormat
	InvalidDate
	UnknownReference
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidDate:
		return "InvalidDate"
	case UnknownReference:
		return "UnknownReference"
	default:
		return "Unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FieldError is one failed rule on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Errors is the ordered list of failures of one submission.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed any rule.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Kinds returns the failure kind recorded for each field.
func (e Errors) Kinds() map[string]Kind {
	out := make(map[string]Kind, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Kind
	}
	return out
}
