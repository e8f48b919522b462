package form

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authorInput struct {
	FirstName   string `form:"first_name" validate:"required,max=100,alphanum"`
	FamilyName  string `form:"family_name" validate:"required,max=100,alphanum"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,isodate"`
}

func TestValues_GetAndList(t *testing.T) {
	v := Values{"genre": {"g1", "g2"}, "title": {"Dune"}, "empty": {""}}

	assert.Equal(t, "Dune", v.Get("title"))
	assert.Equal(t, "", v.Get("missing"))
	assert.Equal(t, []string{"g1", "g2"}, v.List("genre"))
	assert.Equal(t, []string{"Dune"}, v.List("title"))

	missing := v.List("missing")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
	assert.Empty(t, v.List("empty"))
}

func TestValues_Has(t *testing.T) {
	v := Values{"genre": {"g1", "g2"}}
	assert.True(t, v.Has("genre", "g2"))
	assert.False(t, v.Has("genre", "g3"))
	assert.False(t, v.Has("other", "g1"))
}

func TestFromRequest(t *testing.T) {
	body := strings.NewReader("title=Dune&genre=g1&genre=g2")
	r := httptest.NewRequest(http.MethodPost, "/catalog/book/create", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "Dune", v.Get("title"))
	assert.Equal(t, []string{"g1", "g2"}, v.List("genre"))
}

func TestFromRequest_Malformed(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/catalog/author/create", strings.NewReader("first_name=%zz&family_name=Butler"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := FromRequest(r)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFromRequest_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader("name="+strings.Repeat("x", 64)))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	_, err := FromRequest(r)
	assert.ErrorIs(t, err, ErrMalformed)
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestTrim(t *testing.T) {
	in := Values{"first_name": {"  Ada \t"}, "genre": {" g1", "g2 "}}
	out := Trim(in)

	assert.Equal(t, "Ada", out.Get("first_name"))
	assert.Equal(t, []string{"g1", "g2"}, out.List("genre"))
	assert.Equal(t, "  Ada \t", in.Get("first_name"), "input must not be modified")
}

func TestEscape(t *testing.T) {
	in := Values{
		"title":   {`<script>alert("x")</script>`},
		"summary": {"Tom & Jerry's"},
		"isbn":    {"<keep>"},
	}
	out := Escape(in, "title", "summary")

	assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", out.Get("title"))
	assert.Equal(t, "Tom &amp; Jerry&#39;s", out.Get("summary"))
	assert.Equal(t, "<keep>", out.Get("isbn"))
	assert.Equal(t, "Tom & Jerry's", in.Get("summary"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "1920-01-02", want: time.Date(1920, 1, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-05T10:30:00Z", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-05T23:30:00-05:00", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-05T10:30", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-02-30", wantErr: true},
		{in: "05/03/2024", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}

	got, err := ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidate_Valid(t *testing.T) {
	errs := Validate(authorInput{FirstName: "Ada", FamilyName: "Lovelace", DateOfBirth: "1815-12-10"}, nil)
	assert.Empty(t, errs)
}

func TestValidate_NonASCIILettersRejected(t *testing.T) {
	errs := Validate(authorInput{FirstName: "Günter", FamilyName: "Grass"}, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "first_name", errs[0].Field)
	assert.Equal(t, InvalidFormat, errs[0].Kind)
}

func TestValidate_CollectsAllFailuresInFieldOrder(t *testing.T) {
	errs := Validate(authorInput{FamilyName: "O'Brien", DateOfBirth: "not-a-date"}, nil)

	require.Len(t, errs, 3)
	assert.Equal(t, FieldError{Field: "first_name", Kind: MissingField, Message: "First name must be specified"}, errs[0])
	assert.Equal(t, "family_name", errs[1].Field)
	assert.Equal(t, InvalidFormat, errs[1].Kind)
	assert.Equal(t, "Family name has non-alphanumeric characters", errs[1].Message)
	assert.Equal(t, "date_of_birth", errs[2].Field)
	assert.Equal(t, InvalidDate, errs[2].Kind)
	assert.Equal(t, "Invalid date of birth", errs[2].Message)
}

func TestValidate_MaxLength(t *testing.T) {
	errs := Validate(authorInput{FirstName: strings.Repeat("a", 101), FamilyName: "B"}, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "first_name", errs[0].Field)
	assert.Equal(t, InvalidFormat, errs[0].Kind)
}

func TestValidate_CustomMessages(t *testing.T) {
	msgs := Messages{
		"first_name.required": "First name must be specified.",
		"family_name":         "Bad family name",
	}
	errs := Validate(authorInput{FamilyName: "x y"}, msgs)

	require.Len(t, errs, 2)
	assert.Equal(t, "First name must be specified.", errs[0].Message)
	assert.Equal(t, "Bad family name", errs[1].Message)
}

func TestErrors(t *testing.T) {
	errs := Errors{
		{Field: "title", Kind: MissingField, Message: "Title must not be empty"},
		{Field: "author", Kind: UnknownReference, Message: "Author does not exist"},
	}

	assert.True(t, errs.Has("author"))
	assert.False(t, errs.Has("isbn"))
	assert.Equal(t, map[string]Kind{"title": MissingField, "author": UnknownReference}, errs.Kinds())
	assert.Equal(t, "title: Title must not be empty; author: Author does not exist", errs.Error())
}

func TestKind_MarshalText(t *testing.T) {
	b, err := UnknownReference.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "UnknownReference", string(b))
	assert.Equal(t, "Unknown", Kind(0).String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Date of birth", Label("date_of_birth"))
	assert.Equal(t, "Isbn", Label("isbn"))
	assert.Equal(t, "", Label(""))
}
