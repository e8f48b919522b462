package genre

import (
	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type genreForm struct {
	Name string `form:"name" validate:"required,min=1,max=100"`
}

var messages = form.Messages{
	"name.required": "Genre name required",
}

func decode(v form.Values) (catalog.Genre, form.Values, form.Errors) {
	v = form.Trim(v)
	errs := form.Validate(genreForm{Name: v.Get("name")}, messages)
	v = form.Escape(v, "name")
	if len(errs) > 0 {
		return catalog.Genre{}, v, errs
	}
	return catalog.Genre{Name: v.Get("name")}, v, nil
}

func valuesOf(g catalog.Genre) form.Values {
	v := form.Values{}
	v.Set("name", g.Name)
	return v
}
