package genre

import (
	"context"
	"fmt"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/platform/fanout"
	"locallibrary/internal/platform/metrics"
)

// Detail is a genre with the books filed under it.
type Detail struct {
	Genre catalog.Genre
	Books []catalog.Book
}

type FormData struct {
	Values form.Values
	Errors form.Errors
}

type Service struct {
	store   catalog.Store
	timeout time.Duration
}

func NewService(store catalog.Store, timeout time.Duration) *Service {
	return &Service{store: store, timeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) List(ctx context.Context) ([]catalog.Genre, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Genres.FindAll(ctx)
}

func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		g     *catalog.Genre
		books []catalog.Book
	)
	fg := fanout.New(ctx)
	fanout.Fetch(fg, "genre", &g, func(ctx context.Context) (*catalog.Genre, error) {
		return s.store.Genres.FindByID(ctx, id)
	})
	fanout.Fetch(fg, "genre_books", &books, func(ctx context.Context) ([]catalog.Book, error) {
		return s.store.Books.FindByGenre(ctx, id)
	})
	if err := fg.Wait(); err != nil {
		return Detail{}, err
	}
	if g == nil {
		return Detail{}, fmt.Errorf("genre %s: %w", id, catalog.ErrNotFound)
	}
	return Detail{Genre: *g, Books: books}, nil
}

func (s *Service) CreateForm(ctx context.Context) (FormData, error) {
	return FormData{Values: form.Values{}}, nil
}

func (s *Service) Create(ctx context.Context, v form.Values) (*catalog.Genre, FormData, error) {
	g, clean, errs := decode(v)
	if len(errs) > 0 {
		metrics.FormRejected("genre")
		return nil, FormData{Values: clean, Errors: errs}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Genres.Insert(ctx, &g); err != nil {
		return nil, FormData{}, fmt.Errorf("insert genre: %w", err)
	}
	return &g, FormData{}, nil
}

func (s *Service) UpdateForm(ctx context.Context, id string) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	g, err := s.store.Genres.FindByID(ctx, id)
	if err != nil {
		return FormData{}, err
	}
	if g == nil {
		return FormData{}, fmt.Errorf("genre %s: %w", id, catalog.ErrNotFound)
	}
	return FormData{Values: valuesOf(*g)}, nil
}

func (s *Service) Update(ctx context.Context, id string, v form.Values) (*catalog.Genre, FormData, error) {
	g, clean, errs := decode(v)
	if len(errs) > 0 {
		metrics.FormRejected("genre")
		return nil, FormData{Values: clean, Errors: errs}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	g.ID = id
	matched, err := s.store.Genres.Update(ctx, g)
	if err != nil {
		return nil, FormData{}, fmt.Errorf("update genre: %w", err)
	}
	if !matched {
		return nil, FormData{}, fmt.Errorf("genre %s: %w", id, catalog.ErrNotFound)
	}
	return &g, FormData{}, nil
}

func (s *Service) DeleteForm(ctx context.Context, id string) (Detail, error) {
	return s.Detail(ctx, id)
}

// Delete removes the genre unless books are still filed under it.
func (s *Service) Delete(ctx context.Context, id string) (Detail, error) {
	d, err := s.Detail(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if len(d.Books) > 0 {
		return d, fmt.Errorf("genre %s: %w", id, catalog.ErrReferentialConflict)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Genres.Delete(ctx, id); err != nil {
		return Detail{}, fmt.Errorf("delete genre: %w", err)
	}
	return d, nil
}
