package store

import (
	"context"

	"locallibrary/internal/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type AuthorBadger struct {
	db *badger.DB
}

func NewAuthorBadger(db *badger.DB) *AuthorBadger {
	return &AuthorBadger{db: db}
}

func (r *AuthorBadger) FindAll(ctx context.Context) ([]catalog.Author, error) {
	authors, err := findAll[catalog.Author](r.db, authorPrefix)
	if err != nil {
		return nil, err
	}
	sortAuthors(authors)
	return authors, nil
}

func (r *AuthorBadger) FindByID(ctx context.Context, id string) (*catalog.Author, error) {
	return findOne[catalog.Author](r.db, authorPrefix+id)
}

func (r *AuthorBadger) Insert(ctx context.Context, a *catalog.Author) error {
	a.ID = uuid.NewString()
	return r.db.Update(func(txn *badger.Txn) error {
		return storeOne(txn, authorPrefix+a.ID, a)
	})
}

func (r *AuthorBadger) Update(ctx context.Context, a catalog.Author) (bool, error) {
	return replaceOne(r.db, authorPrefix+a.ID, a)
}

func (r *AuthorBadger) Delete(ctx context.Context, id string) error {
	return deleteOne(r.db, authorPrefix+id)
}

func (r *AuthorBadger) Count(ctx context.Context) (int64, error) {
	return count(r.db, authorPrefix)
}
