package book

import (
	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type bookForm struct {
	Title   string `form:"title" validate:"required"`
	Author  string `form:"author" validate:"required"`
	Summary string `form:"summary" validate:"required"`
	ISBN    string `form:"isbn" validate:"required"`
}

var messages = form.Messages{
	"title.required":   "Title must not be empty",
	"author.required":  "Author must not be empty",
	"summary.required": "Summary must not be empty",
	"isbn.required":    "ISBN must not be empty",
}

var escaped = []string{"title", "author", "summary", "isbn", "genre"}

func decode(v form.Values) (catalog.Book, form.Values, form.Errors) {
	v = form.Trim(v)
	in := bookForm{
		Title:   v.Get("title"),
		Author:  v.Get("author"),
		Summary: v.Get("summary"),
		ISBN:    v.Get("isbn"),
	}
	errs := form.Validate(in, messages)
	v = form.Escape(v, escaped...)
	if len(errs) > 0 {
		return catalog.Book{}, v, errs
	}
	return catalog.Book{
		Title:    v.Get("title"),
		AuthorID: v.Get("author"),
		Summary:  v.Get("summary"),
		ISBN:     v.Get("isbn"),
		GenreIDs: v.List("genre"),
	}, v, nil
}

// checkReferences reports an author or genre that is not in the store.
func checkReferences(v form.Values, authors []catalog.Author, genres []catalog.Genre) form.Errors {
	var errs form.Errors
	if id := v.Get("author"); id != "" && !containsAuthor(authors, id) {
		errs = append(errs, form.FieldError{Field: "author", Kind: form.UnknownReference, Message: "Author does not exist"})
	}
	for _, id := range v.List("genre") {
		if !containsGenre(genres, id) {
			errs = append(errs, form.FieldError{Field: "genre", Kind: form.UnknownReference, Message: "Genre does not exist"})
			break
		}
	}
	return errs
}

func containsAuthor(authors []catalog.Author, id string) bool {
	for _, a := range authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func containsGenre(genres []catalog.Genre, id string) bool {
	for _, g := range genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

func valuesOf(b catalog.Book) form.Values {
	v := form.Values{}
	v.Set("title", b.Title)
	v.Set("author", b.AuthorID)
	v.Set("summary", b.Summary)
	v.Set("isbn", b.ISBN)
	v.SetList("genre", b.GenreIDs)
	return v
}
