package bookinstance

import (
	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

const isoDate = "2006-01-02"

type instanceForm struct {
	Book    string `form:"book" validate:"required"`
	Imprint string `form:"imprint" validate:"required"`
	DueBack string `form:"due_back" validate:"omitempty,isodate"`
	Status  string `form:"status" validate:"omitempty,oneof=Available Maintenance Loaned Reserved"`
}

var messages = form.Messages{
	"book.required":    "Book must be specified",
	"imprint.required": "Imprint must be specified",
	"due_back":         "Invalid date",
	"status":           "Invalid status",
}

func decode(v form.Values) (catalog.BookInstance, form.Values, form.Errors) {
	v = form.Trim(v)
	in := instanceForm{
		Book:    v.Get("book"),
		Imprint: v.Get("imprint"),
		DueBack: v.Get("due_back"),
		Status:  v.Get("status"),
	}
	errs := form.Validate(in, messages)
	v = form.Escape(v, "book", "imprint", "status")
	if len(errs) > 0 {
		return catalog.BookInstance{}, v, errs
	}

	status := catalog.Status(in.Status)
	if status == "" {
		status = catalog.StatusMaintenance
	}
	due, _ := form.ParseDate(in.DueBack)
	return catalog.BookInstance{
		BookID:  v.Get("book"),
		Imprint: v.Get("imprint"),
		Status:  status,
		DueBack: due,
	}, v, nil
}

func checkReferences(v form.Values, books []catalog.Book) form.Errors {
	id := v.Get("book")
	if id == "" {
		return nil
	}
	for _, b := range books {
		if b.ID == id {
			return nil
		}
	}
	return form.Errors{{Field: "book", Kind: form.UnknownReference, Message: "Book does not exist"}}
}

func valuesOf(bi catalog.BookInstance) form.Values {
	v := form.Values{}
	v.Set("book", bi.BookID)
	v.Set("imprint", bi.Imprint)
	v.Set("status", string(bi.Status))
	if bi.DueBack != nil {
		v.Set("due_back", bi.DueBack.Format(isoDate))
	}
	return v
}
