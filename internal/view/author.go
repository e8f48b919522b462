package view

import (
	"context"
	"io"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type AuthorListPage struct {
	Title   string           `json:"title"`
	Authors []catalog.Author `json:"author_list"`
}

func (p AuthorListPage) Render(ctx context.Context, w io.Writer) error {
	return authorList(p).Render(ctx, w)
}

type AuthorDetailPage struct {
	Title  string         `json:"title"`
	Author catalog.Author `json:"author"`
	Books  []catalog.Book `json:"author_books"`
}

func (p AuthorDetailPage) Render(ctx context.Context, w io.Writer) error {
	return authorDetail(p).Render(ctx, w)
}

type AuthorFormPage struct {
	Title  string      `json:"title"`
	Values form.Values `json:"author"`
	Errors form.Errors `json:"errors,omitempty"`
}

func (p AuthorFormPage) Render(ctx context.Context, w io.Writer) error {
	return authorForm(p).Render(ctx, w)
}

// AuthorDeletePage lists the author's books. Deletion is only offered once
// Books is empty.
type AuthorDeletePage struct {
	Title  string         `json:"title"`
	Author catalog.Author `json:"author"`
	Books  []catalog.Book `json:"author_books"`
}

func (p AuthorDeletePage) Render(ctx context.Context, w io.Writer) error {
	return authorDelete(p).Render(ctx, w)
}
