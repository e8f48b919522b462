package view

import (
	"context"
	"io"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type GenreListPage struct {
	Title  string          `json:"title"`
	Genres []catalog.Genre `json:"genre_list"`
}

func (p GenreListPage) Render(ctx context.Context, w io.Writer) error {
	return genreList(p).Render(ctx, w)
}

type GenreDetailPage struct {
	Title string         `json:"title"`
	Genre catalog.Genre  `json:"genre"`
	Books []catalog.Book `json:"genre_books"`
}

func (p GenreDetailPage) Render(ctx context.Context, w io.Writer) error {
	return genreDetail(p).Render(ctx, w)
}

type GenreFormPage struct {
	Title  string      `json:"title"`
	Values form.Values `json:"genre"`
	Errors form.Errors `json:"errors,omitempty"`
}

func (p GenreFormPage) Render(ctx context.Context, w io.Writer) error {
	return genreForm(p).Render(ctx, w)
}

type GenreDeletePage struct {
	Title string         `json:"title"`
	Genre catalog.Genre  `json:"genre"`
	Books []catalog.Book `json:"genre_books"`
}

func (p GenreDeletePage) Render(ctx context.Context, w io.Writer) error {
	return genreDelete(p).Render(ctx, w)
}
