// Package view renders the catalog pages. Every page is a plain struct that is
// both a templ.Component and the JSON data bag served to API clients. The
// markup lives in the .templ files next to this one.
package view

//go:generate templ generate

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"locallibrary/internal/catalog"
)

// plain undoes the entity escaping applied when text is stored, so templ
// escapes it exactly once on output.
func plain(s string) string {
	return html.UnescapeString(s)
}

var navLinks = []struct{ href, label string }{
	{"/catalog", "Home"},
	{"/catalog/books", "All books"},
	{"/catalog/authors", "All authors"},
	{"/catalog/genres", "All genres"},
	{"/catalog/bookinstances", "All book-instances"},
	{"/catalog/bookinstances/available", "Available book-instances"},
	{"", ""},
	{"/catalog/author/create", "Create new author"},
	{"/catalog/genre/create", "Create new genre"},
	{"/catalog/book/create", "Create new book"},
	{"/catalog/bookinstance/create", "Create new book instance (copy)"},
}

func instanceLabel(d catalog.InstanceDetail) string {
	title := ""
	if d.Book != nil {
		title = d.Book.Title
	}
	return title + " : " + d.Imprint
}

// ErrorPage is shown for missing records, malformed requests and internal
// failures.
type ErrorPage struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (p ErrorPage) Render(ctx context.Context, w io.Writer) error {
	return errorPage(p).Render(ctx, w)
}

var (
	_ templ.Component = ErrorPage{}
	_ templ.Component = IndexPage{}
	_ templ.Component = AuthorListPage{}
	_ templ.Component = AuthorDetailPage{}
	_ templ.Component = AuthorFormPage{}
	_ templ.Component = AuthorDeletePage{}
	_ templ.Component = GenreListPage{}
	_ templ.Component = GenreDetailPage{}
	_ templ.Component = GenreFormPage{}
	_ templ.Component = GenreDeletePage{}
	_ templ.Component = BookListPage{}
	_ templ.Component = BookDetailPage{}
	_ templ.Component = BookFormPage{}
	_ templ.Component = BookDeletePage{}
	_ templ.Component = InstanceListPage{}
	_ templ.Component = InstanceDetailPage{}
	_ templ.Component = InstanceFormPage{}
	_ templ.Component = InstanceDeletePage{}
)
