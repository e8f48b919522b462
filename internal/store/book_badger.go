package store

import (
	"context"

	"locallibrary/internal/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type BookBadger struct {
	db *badger.DB
}

func NewBookBadger(db *badger.DB) *BookBadger {
	return &BookBadger{db: db}
}

func (r *BookBadger) FindAll(ctx context.Context) ([]catalog.BookDetail, error) {
	var out []catalog.BookDetail
	err := r.db.View(func(txn *badger.Txn) error {
		books, err := loadAll[catalog.Book](txn, bookPrefix)
		if err != nil {
			return err
		}
		authors, genres, err := loadReferences(txn)
		if err != nil {
			return err
		}

		out = make([]catalog.BookDetail, 0, len(books))
		for _, b := range books {
			out = append(out, expandBook(b, authors, genres))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortBookDetails(out)
	return out, nil
}

func (r *BookBadger) FindByID(ctx context.Context, id string) (*catalog.BookDetail, error) {
	var out *catalog.BookDetail
	err := r.db.View(func(txn *badger.Txn) error {
		b, err := loadOne[catalog.Book](txn, bookPrefix+id)
		if err != nil || b == nil {
			return err
		}
		authors, genres, err := loadReferences(txn)
		if err != nil {
			return err
		}
		d := expandBook(*b, authors, genres)
		out = &d
		return nil
	})
	return out, err
}

func (r *BookBadger) FindByAuthor(ctx context.Context, authorID string) ([]catalog.Book, error) {
	return r.filter(func(b catalog.Book) bool { return b.AuthorID == authorID })
}

func (r *BookBadger) FindByGenre(ctx context.Context, genreID string) ([]catalog.Book, error) {
	return r.filter(func(b catalog.Book) bool { return b.HasGenre(genreID) })
}

func (r *BookBadger) filter(keep func(catalog.Book) bool) ([]catalog.Book, error) {
	books, err := findAll[catalog.Book](r.db, bookPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Book, 0)
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sortBooks(out)
	return out, nil
}

func (r *BookBadger) Insert(ctx context.Context, b *catalog.Book) error {
	b.ID = uuid.NewString()
	return r.db.Update(func(txn *badger.Txn) error {
		return storeOne(txn, bookPrefix+b.ID, b)
	})
}

func (r *BookBadger) Update(ctx context.Context, b catalog.Book) (bool, error) {
	return replaceOne(r.db, bookPrefix+b.ID, b)
}

func (r *BookBadger) Delete(ctx context.Context, id string) error {
	return deleteOne(r.db, bookPrefix+id)
}

func (r *BookBadger) Count(ctx context.Context) (int64, error) {
	return count(r.db, bookPrefix)
}

func loadReferences(txn *badger.Txn) (map[string]catalog.Author, map[string]catalog.Genre, error) {
	authors, err := loadAll[catalog.Author](txn, authorPrefix)
	if err != nil {
		return nil, nil, err
	}
	genres, err := loadAll[catalog.Genre](txn, genrePrefix)
	if err != nil {
		return nil, nil, err
	}

	authorByID := make(map[string]catalog.Author, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}
	genreByID := make(map[string]catalog.Genre, len(genres))
	for _, g := range genres {
		genreByID[g.ID] = g
	}
	return authorByID, genreByID, nil
}

func expandBook(b catalog.Book, authors map[string]catalog.Author, genres map[string]catalog.Genre) catalog.BookDetail {
	d := catalog.BookDetail{Book: b, Genres: genresInOrder(b.GenreIDs, genres)}
	if a, ok := authors[b.AuthorID]; ok {
		d.Author = &a
	}
	return d
}
