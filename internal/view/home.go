package view

import (
	"context"
	"io"
)

// Counts are the record totals shown on the index page.
type Counts struct {
	Books              int64 `json:"book_count"`
	Instances          int64 `json:"book_instance_count"`
	InstancesAvailable int64 `json:"book_instance_available_count"`
	Authors            int64 `json:"author_count"`
	Genres             int64 `json:"genre_count"`
}

type IndexPage struct {
	Title  string `json:"title"`
	Counts Counts `json:"data"`
}

func (p IndexPage) Render(ctx context.Context, w io.Writer) error {
	return index(p).Render(ctx, w)
}
