package bookinstance

import (
	"context"
	"fmt"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/platform/fanout"
	"locallibrary/internal/platform/metrics"
)

// FormData is the state of the copy form with every book to choose from.
type FormData struct {
	Values form.Values
	Errors form.Errors
	Books  []catalog.Book
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

// List returns every copy sorted by book title.
func (s *Service) List(ctx context.Context) ([]catalog.InstanceDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Instances.FindAll(ctx, catalog.InstanceFilter{})
}

// ListAvailable returns the copies that can be borrowed now.
func (s *Service) ListAvailable(ctx context.Context) ([]catalog.InstanceDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Instances.FindAll(ctx, catalog.InstanceFilter{Status: catalog.StatusAvailable})
}

func (s *Service) Detail(ctx context.Context, id string) (catalog.InstanceDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bi, err := s.store.Instances.FindByID(ctx, id)
	if err != nil {
		return catalog.InstanceDetail{}, err
	}
	if bi == nil {
		return catalog.InstanceDetail{}, fmt.Errorf("book instance %s: %w", id, catalog.ErrNotFound)
	}
	return *bi, nil
}

func (s *Service) books(ctx context.Context) ([]catalog.Book, error) {
	details, err := s.store.Books.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	books := make([]catalog.Book, 0, len(details))
	for _, d := range details {
		books = append(books, d.Book)
	}
	return books, nil
}

func (s *Service) CreateForm(ctx context.Context) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	books, err := s.books(ctx)
	if err != nil {
		return FormData{}, err
	}
	return FormData{Values: form.Values{}, Books: books}, nil
}

// Create stores the submitted copy. An empty status means Maintenance.
func (s *Service) Create(ctx context.Context, v form.Values) (*catalog.BookInstance, FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bi, fd, err := s.accept(ctx, v)
	if err != nil || len(fd.Errors) > 0 {
		return nil, fd, err
	}
	if err := s.store.Instances.Insert(ctx, &bi); err != nil {
		return nil, FormData{}, fmt.Errorf("insert book instance: %w", err)
	}
	return &bi, FormData{}, nil
}

func (s *Service) accept(ctx context.Context, v form.Values) (catalog.BookInstance, FormData, error) {
	bi, clean, errs := decode(v)

	books, err := s.books(ctx)
	if err != nil {
		return catalog.BookInstance{}, FormData{}, err
	}
	errs = append(errs, checkReferences(clean, books)...)
	if len(errs) > 0 {
		metrics.FormRejected("bookinstance")
		return catalog.BookInstance{}, FormData{Values: clean, Errors: errs, Books: books}, nil
	}
	return bi, FormData{}, nil
}

func (s *Service) UpdateForm(ctx context.Context, id string) (FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		bi    *catalog.InstanceDetail
		books []catalog.Book
	)
	g := fanout.New(ctx)
	fanout.Fetch(g, "bookinstance", &bi, func(ctx context.Context) (*catalog.InstanceDetail, error) {
		return s.store.Instances.FindByID(ctx, id)
	})
	fanout.Fetch(g, "books", &books, s.books)
	if err := g.Wait(); err != nil {
		return FormData{}, err
	}
	if bi == nil {
		return FormData{}, fmt.Errorf("book instance %s: %w", id, catalog.ErrNotFound)
	}
	return FormData{Values: valuesOf(bi.BookInstance), Books: books}, nil
}

func (s *Service) Update(ctx context.Context, id string, v form.Values) (*catalog.BookInstance, FormData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bi, fd, err := s.accept(ctx, v)
	if err != nil || len(fd.Errors) > 0 {
		return nil, fd, err
	}
	bi.ID = id
	matched, err := s.store.Instances.Update(ctx, bi)
	if err != nil {
		return nil, FormData{}, fmt.Errorf("update book instance: %w", err)
	}
	if !matched {
		return nil, FormData{}, fmt.Errorf("book instance %s: %w", id, catalog.ErrNotFound)
	}
	return &bi, FormData{}, nil
}

func (s *Service) DeleteForm(ctx context.Context, id string) (catalog.InstanceDetail, error) {
	return s.Detail(ctx, id)
}

// Delete removes the copy. Nothing references a copy, so it is never blocked.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Detail(ctx, id); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Instances.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book instance: %w", err)
	}
	return nil
}
