package view

import (
	"context"
	"io"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type BookListPage struct {
	Title string               `json:"title"`
	Books []catalog.BookDetail `json:"book_list"`
}

func (p BookListPage) Render(ctx context.Context, w io.Writer) error {
	return bookList(p).Render(ctx, w)
}

type BookDetailPage struct {
	Title     string                 `json:"title"`
	Book      catalog.BookDetail     `json:"book"`
	Instances []catalog.BookInstance `json:"book_instances"`
}

func (p BookDetailPage) Render(ctx context.Context, w io.Writer) error {
	return bookDetail(p).Render(ctx, w)
}

// BookFormPage lists every author and genre. The selected author and the
// checked genres come from Values.
type BookFormPage struct {
	Title   string           `json:"title"`
	Values  form.Values      `json:"book"`
	Errors  form.Errors      `json:"errors,omitempty"`
	Authors []catalog.Author `json:"authors"`
	Genres  []catalog.Genre  `json:"genres"`
}

func (p BookFormPage) Render(ctx context.Context, w io.Writer) error {
	return bookForm(p).Render(ctx, w)
}

type BookDeletePage struct {
	Title     string                 `json:"title"`
	Book      catalog.BookDetail     `json:"book"`
	Instances []catalog.BookInstance `json:"book_bookinstances"`
}

func (p BookDeletePage) Render(ctx context.Context, w io.Writer) error {
	return bookDelete(p).Render(ctx, w)
}
