//go:build property
// +build property

package form

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSanitizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("trim is idempotent", prop.ForAll(
		func(s string) bool {
			once := Trim(Values{"f": {s}})
			twice := Trim(once)
			return once.Get("f") == twice.Get("f")
		},
		gen.AnyString(),
	))

	properties.Property("escaped values contain no markup", prop.ForAll(
		func(s string) bool {
			out := Escape(Values{"f": {s}}, "f").Get("f")
			return !strings.ContainsAny(out, `<>"'`)
		},
		gen.AnyString(),
	))

	properties.Property("list never drops or reorders submitted values", prop.ForAll(
		func(vals []string) bool {
			got := Values{"genre": vals}.List("genre")
			if got == nil || len(got) != len(vals) {
				return false
			}
			for i := range vals {
				if got[i] != vals[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("alphanumeric names pass validation", prop.ForAll(
		func(first, family string) bool {
			if len(first) > 100 || len(family) > 100 {
				return true
			}
			return len(Validate(authorInput{FirstName: first, FamilyName: family}, nil)) == 0
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t)
}
