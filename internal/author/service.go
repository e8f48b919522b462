package author

import (
	"context"
	"fmt"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/platform/fanout"
	"locallibrary/internal/platform/metrics"
)

// Detail is an author with the books that reference it.
type Detail struct {
	Author catalog.Author
	Books  []catalog.Book
}

// FormData is the state of the author form.
type FormData struct {
	Values form.Values
	Errors form.Errors
}

// Service provides the author pages.
type Service struct {
	store   catalog.Store
	timeout time.Duration
}

// NewService creates a new author service. Each store round trip is bounded by
// timeout; zero means unbounded.
func NewService(store catalog.Store, timeout time.Duration) *Service {
	return &Service{store: store, timeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns all authors sorted by family name, then first name.
func (s *Service) List(ctx context.Context) ([]catalog.Author, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Authors.FindAll(ctx)
}

// Detail returns the author and their books.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		a     *catalog.Author
		books []catalog.Book
	)
	g := fanout.New(ctx)
	fanout.Fetch(g, "author", &a, func(ctx context.Context) (*catalog.Author, error) {
		return s.store.Authors.FindByID(ctx, id)
	})
	fanout.Fetch(g, "author_books", &books, func(ctx context.Context) ([]catalog.Book, error) {
		return s.store.Books.FindByAuthor(ctx, id)
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}
	if a == nil {
		return Detail{}, fmt.Errorf("author %s: %w", id, catalog.ErrNotFound)
	}
	return Detail{Author: *a, Books: books}, nil
}

func (s *Service) CreateForm(ctx context.Context) (FormData, error) {
	return FormData{Values: form.Values{}}, nil
}

// Create stores the submitted author. A rejected submission returns a nil
// author and the form to re-render.
func (s *Service) Create(ctx context.Context, v form.Values) (*catalog.Author, FormData, error) {
	a, clean, errs := decode(v)
	if len(errs) > 0 {
		metrics.FormRejected("author")
		return nil, FormData{Values: clean, Errors: errs}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Authors.Insert(ctx, &a); err != nil {
		return nil, FormData{}, fmt.Errorf("insert author: %w", err)
	}
	return &a, FormData{}, nil
}

// UpdateForm returns the form prefilled with the stored author.
func (s *Service) UpdateForm(ctx context.Context, id string) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.store.Authors.FindByID(ctx, id)
	if err != nil {
		return FormData{}, err
	}
	if a == nil {
		return FormData{}, fmt.Errorf("author %s: %w", id, catalog.ErrNotFound)
	}
	return FormData{Values: valuesOf(*a)}, nil
}

// Update replaces every field of the author with the submission.
func (s *Service) Update(ctx context.Context, id string, v form.Values) (*catalog.Author, FormData, error) {
	a, clean, errs := decode(v)
	if len(errs) > 0 {
		metrics.FormRejected("author")
		return nil, FormData{Values: clean, Errors: errs}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	a.ID = id
	matched, err := s.store.Authors.Update(ctx, a)
	if err != nil {
		return nil, FormData{}, fmt.Errorf("update author: %w", err)
	}
	if !matched {
		return nil, FormData{}, fmt.Errorf("author %s: %w", id, catalog.ErrNotFound)
	}
	return &a, FormData{}, nil
}

// DeleteForm returns the author and the books that block deleting it.
func (s *Service) DeleteForm(ctx context.Context, id string) (Detail, error) {
	return s.Detail(ctx, id)
}

// Delete removes the author unless a book still references it, in which case
// it returns catalog.ErrReferentialConflict with the blocking books.
func (s *Service) Delete(ctx context.Context, id string) (Detail, error) {
	d, err := s.Detail(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if len(d.Books) > 0 {
		return d, fmt.Errorf("author %s: %w", id, catalog.ErrReferentialConflict)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Authors.Delete(ctx, id); err != nil {
		return Detail{}, fmt.Errorf("delete author: %w", err)
	}
	return d, nil
}
