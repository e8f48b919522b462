package catalog

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks locallibrary/internal/catalog AuthorRepository,GenreRepository,BookRepository,InstanceRepository

// AuthorRepository stores authors. FindByID returns nil, nil when absent.
type AuthorRepository interface {
	FindAll(ctx context.Context) ([]Author, error)
	FindByID(ctx context.Context, id string) (*Author, error)
	Insert(ctx context.Context, a *Author) error
	Update(ctx context.Context, a Author) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// GenreRepository stores genres. FindByID returns nil, nil when absent.
type GenreRepository interface {
	FindAll(ctx context.Context) ([]Genre, error)
	FindByID(ctx context.Context, id string) (*Genre, error)
	Insert(ctx context.Context, g *Genre) error
	Update(ctx context.Context, g Genre) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// BookRepository stores books. Listings are sorted by title and FindAll and
// FindByID expand the author and genre references.
type BookRepository interface {
	FindAll(ctx context.Context) ([]BookDetail, error)
	FindByID(ctx context.Context, id string) (*BookDetail, error)
	FindByAuthor(ctx context.Context, authorID string) ([]Book, error)
	FindByGenre(ctx context.Context, genreID string) ([]Book, error)
	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b Book) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// InstanceRepository stores book instances with the book reference expanded.
type InstanceRepository interface {
	FindAll(ctx context.Context, f InstanceFilter) ([]InstanceDetail, error)
	FindByID(ctx context.Context, id string) (*InstanceDetail, error)
	FindByBook(ctx context.Context, bookID string) ([]BookInstance, error)
	Insert(ctx context.Context, bi *BookInstance) error
	Update(ctx context.Context, bi BookInstance) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f InstanceFilter) (int64, error)
}

// Store is the record store handle injected into every service.
type Store struct {
	Authors   AuthorRepository
	Genres    GenreRepository
	Books     BookRepository
	Instances InstanceRepository
}
