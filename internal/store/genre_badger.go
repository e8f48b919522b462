package store

import (
	"context"

	"locallibrary/internal/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type GenreBadger struct {
	db *badger.DB
}

func NewGenreBadger(db *badger.DB) *GenreBadger {
	return &GenreBadger{db: db}
}

func (r *GenreBadger) FindAll(ctx context.Context) ([]catalog.Genre, error) {
	genres, err := findAll[catalog.Genre](r.db, genrePrefix)
	if err != nil {
		return nil, err
	}
	sortGenres(genres)
	return genres, nil
}

func (r *GenreBadger) FindByID(ctx context.Context, id string) (*catalog.Genre, error) {
	return findOne[catalog.Genre](r.db, genrePrefix+id)
}

func (r *GenreBadger) Insert(ctx context.Context, g *catalog.Genre) error {
	g.ID = uuid.NewString()
	return r.db.Update(func(txn *badger.Txn) error {
		return storeOne(txn, genrePrefix+g.ID, g)
	})
}

func (r *GenreBadger) Update(ctx context.Context, g catalog.Genre) (bool, error) {
	return replaceOne(r.db, genrePrefix+g.ID, g)
}

func (r *GenreBadger) Delete(ctx context.Context, id string) error {
	return deleteOne(r.db, genrePrefix+id)
}

func (r *GenreBadger) Count(ctx context.Context) (int64, error) {
	return count(r.db, genrePrefix)
}
