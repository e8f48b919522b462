package form

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// Values is a submitted form body: field name to raw values, in submission order.
type Values map[string][]string

// ErrMalformed wraps every error caused by a body or query that cannot be
// parsed as a form, including one cut off by http.MaxBytesReader.
var ErrMalformed = errors.New("malformed form")

// FromRequest parses the request body (and query) into Values.
func FromRequest(r *http.Request) (Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	v := make(Values, len(r.Form))
	for k, vals := range r.Form {
		v[k] = append([]string(nil), vals...)
	}
	return v, nil
}

// Get returns the first value for key, or "".
func (v Values) Get(key string) string {
	if vals := v[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// List returns every value for key. A single submission yields one element and
// an absent field yields an empty, non-nil slice.
func (v Values) List(key string) []string {
	vals := v[key]
	out := make([]string, 0, len(vals))
	for _, s := range vals {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Set replaces key with a single value.
func (v Values) Set(key, value string) {
	v[key] = []string{value}
}

// SetList replaces key with values.
func (v Values) SetList(key string, values []string) {
	v[key] = append([]string(nil), values...)
}

// Has reports whether value is one of the values submitted for key.
func (v Values) Has(key, value string) bool {
	for _, s := range v[key] {
		if s == value {
			return true
		}
	}
	return false
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// Trim returns a copy of v with surrounding whitespace removed from every value.
func Trim(v Values) Values {
	out := v.clone()
	for k, vals := range out {
		for i := range vals {
			vals[i] = strings.TrimSpace(vals[i])
		}
		out[k] = vals
	}
	return out
}

// Escape returns a copy of v with markup-significant characters of the named
// fields replaced by HTML entities.
func Escape(v Values, fields ...string) Values {
	out := v.clone()
	for _, f := range fields {
		vals := out[f]
		for i := range vals {
			vals[i] = html.EscapeString(vals[i])
		}
	}
	return out
}
