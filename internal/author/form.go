package author

import (
	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

const isoDate = "2006-01-02"

// Names are ASCII letters and digits only.
type authorForm struct {
	FirstName   string `form:"first_name" validate:"required,max=100,alphanum"`
	FamilyName  string `form:"family_name" validate:"required,max=100,alphanum"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,isodate"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,isodate"`
}

var messages = form.Messages{
	"first_name.required":  "First name must be specified",
	"first_name.alphanum":  "First name has non-alphanumeric characters",
	"family_name.required": "Family name must be specified",
	"family_name.alphanum": "Family name has non-alphanumeric characters",
	"date_of_birth":        "Invalid date of birth",
	"date_of_death":        "Invalid date of death",
}

// decode runs the submitted values through the form pipeline. The returned
// values are the sanitized submission, used to prefill a rejected form.
func decode(v form.Values) (catalog.Author, form.Values, form.Errors) {
	v = form.Trim(v)
	in := authorForm{
		FirstName:   v.Get("first_name"),
		FamilyName:  v.Get("family_name"),
		DateOfBirth: v.Get("date_of_birth"),
		DateOfDeath: v.Get("date_of_death"),
	}
	errs := form.Validate(in, messages)
	v = form.Escape(v, "first_name", "family_name")
	if len(errs) > 0 {
		return catalog.Author{}, v, errs
	}

	dob, _ := form.ParseDate(in.DateOfBirth)
	dod, _ := form.ParseDate(in.DateOfDeath)
	return catalog.Author{
		FirstName:   v.Get("first_name"),
		FamilyName:  v.Get("family_name"),
		DateOfBirth: dob,
		DateOfDeath: dod,
	}, v, nil
}

func valuesOf(a catalog.Author) form.Values {
	v := form.Values{}
	v.Set("first_name", a.FirstName)
	v.Set("family_name", a.FamilyName)
	if a.DateOfBirth != nil {
		v.Set("date_of_birth", a.DateOfBirth.Format(isoDate))
	}
	if a.DateOfDeath != nil {
		v.Set("date_of_death", a.DateOfDeath.Format(isoDate))
	}
	return v
}
