package book

import (
	"context"
	"fmt"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/platform/fanout"
	"locallibrary/internal/platform/metrics"
)

// Detail is a book with its references expanded and its copies.
type Detail struct {
	Book      catalog.BookDetail
	Instances []catalog.BookInstance
}

// FormData is the state of the book form, with every author and genre to
// choose from.
type FormData struct {
	Values  form.Values
	Errors  form.Errors
	Authors []catalog.Author
	Genres  []catalog.Genre
}

// Service provides book-related business logic.
type Service struct {
	store   catalog.Store
	timeout time.Duration
}

// NewService creates a new book service.
func NewService(store catalog.Store, timeout time.Duration) *Service {
	return &Service{store: store, timeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns all books sorted by title with their author expanded.
func (s *Service) List(ctx context.Context) ([]catalog.BookDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Books.FindAll(ctx)
}

func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		b         *catalog.BookDetail
		instances []catalog.BookInstance
	)
	g := fanout.New(ctx)
	fanout.Fetch(g, "book", &b, func(ctx context.Context) (*catalog.BookDetail, error) {
		return s.store.Books.FindByID(ctx, id)
	})
	fanout.Fetch(g, "book_instances", &instances, func(ctx context.Context) ([]catalog.BookInstance, error) {
		return s.store.Instances.FindByBook(ctx, id)
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}
	if b == nil {
		return Detail{}, fmt.Errorf("book %s: %w", id, catalog.ErrNotFound)
	}
	return Detail{Book: *b, Instances: instances}, nil
}

func (s *Service) references(ctx context.Context) ([]catalog.Author, []catalog.Genre, error) {
	var (
		authors []catalog.Author
		genres  []catalog.Genre
	)
	g := fanout.New(ctx)
	fanout.Fetch(g, "authors", &authors, s.store.Authors.FindAll)
	fanout.Fetch(g, "genres", &genres, s.store.Genres.FindAll)
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// CreateForm returns an empty form with every author and genre.
func (s *Service) CreateForm(ctx context.Context) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	authors, genres, err := s.references(ctx)
	if err != nil {
		return FormData{}, err
	}
	return FormData{Values: form.Values{}, Authors: authors, Genres: genres}, nil
}

// Create stores the submitted book. The author and genres must exist; a
// rejected submission returns a nil book and the form with the submitted
// genres still checked.
func (s *Service) Create(ctx context.Context, v form.Values) (*catalog.Book, FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, fd, err := s.accept(ctx, v)
	if err != nil || len(fd.Errors) > 0 {
		return nil, fd, err
	}
	if err := s.store.Books.Insert(ctx, &b); err != nil {
		return nil, FormData{}, fmt.Errorf("insert book: %w", err)
	}
	return &b, FormData{}, nil
}

func (s *Service) accept(ctx context.Context, v form.Values) (catalog.Book, FormData, error) {
	b, clean, errs := decode(v)

	authors, genres, err := s.references(ctx)
	if err != nil {
		return catalog.Book{}, FormData{}, err
	}
	errs = append(errs, checkReferences(clean, authors, genres)...)
	if len(errs) > 0 {
		metrics.FormRejected("book")
		return catalog.Book{}, FormData{Values: clean, Errors: errs, Authors: authors, Genres: genres}, nil
	}
	return b, FormData{}, nil
}

// UpdateForm returns the form prefilled with the stored book, its author
// selected and its genres checked.
func (s *Service) UpdateForm(ctx context.Context, id string) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		b       *catalog.BookDetail
		authors []catalog.Author
		genres  []catalog.Genre
	)
	g := fanout.New(ctx)
	fanout.Fetch(g, "book", &b, func(ctx context.Context) (*catalog.BookDetail, error) {
		return s.store.Books.FindByID(ctx, id)
	})
	fanout.Fetch(g, "authors", &authors, s.store.Authors.FindAll)
	fanout.Fetch(g, "genres", &genres, s.store.Genres.FindAll)
	if err := g.Wait(); err != nil {
		return FormData{}, err
	}
	if b == nil {
		return FormData{}, fmt.Errorf("book %s: %w", id, catalog.ErrNotFound)
	}
	return FormData{Values: valuesOf(b.Book), Authors: authors, Genres: genres}, nil
}

// Update replaces every field of the book, its genre set included.
func (s *Service) Update(ctx context.Context, id string, v form.Values) (*catalog.Book, FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, fd, err := s.accept(ctx, v)
	if err != nil || len(fd.Errors) > 0 {
		return nil, fd, err
	}
	b.ID = id
	matched, err := s.store.Books.Update(ctx, b)
	if err != nil {
		return nil, FormData{}, fmt.Errorf("update book: %w", err)
	}
	if !matched {
		return nil, FormData{}, fmt.Errorf("book %s: %w", id, catalog.ErrNotFound)
	}
	return &b, FormData{}, nil
}

func (s *Service) DeleteForm(ctx context.Context, id string) (Detail, error) {
	return s.Detail(ctx, id)
}

// Delete removes the book unless copies of it remain.
func (s *Service) Delete(ctx context.Context, id string) (Detail, error) {
	d, err := s.Detail(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if len(d.Instances) > 0 {
		return d, fmt.Errorf("book %s: %w", id, catalog.ErrReferentialConflict)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Books.Delete(ctx, id); err != nil {
		return Detail{}, fmt.Errorf("delete book: %w", err)
	}
	return d, nil
}
