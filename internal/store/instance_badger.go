package store

import (
	"context"

	"locallibrary/internal/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type InstanceBadger struct {
	db *badger.DB
}

func NewInstanceBadger(db *badger.DB) *InstanceBadger {
	return &InstanceBadger{db: db}
}

func (r *InstanceBadger) FindAll(ctx context.Context, f catalog.InstanceFilter) ([]catalog.InstanceDetail, error) {
	var out []catalog.InstanceDetail
	err := r.db.View(func(txn *badger.Txn) error {
		instances, err := loadAll[catalog.BookInstance](txn, instancePrefix)
		if err != nil {
			return err
		}
		books, err := loadAll[catalog.Book](txn, bookPrefix)
		if err != nil {
			return err
		}
		bookByID := make(map[string]catalog.Book, len(books))
		for _, b := range books {
			bookByID[b.ID] = b
		}

		out = make([]catalog.InstanceDetail, 0, len(instances))
		for _, bi := range instances {
			if f.Status != "" && bi.Status != f.Status {
				continue
			}
			d := catalog.InstanceDetail{BookInstance: bi}
			if b, ok := bookByID[bi.BookID]; ok {
				d.Book = &b
			}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortInstances(out)
	return out, nil
}

func (r *InstanceBadger) FindByID(ctx context.Context, id string) (*catalog.InstanceDetail, error) {
	var out *catalog.InstanceDetail
	err := r.db.View(func(txn *badger.Txn) error {
		bi, err := loadOne[catalog.BookInstance](txn, instancePrefix+id)
		if err != nil || bi == nil {
			return err
		}
		b, err := loadOne[catalog.Book](txn, bookPrefix+bi.BookID)
		if err != nil {
			return err
		}
		out = &catalog.InstanceDetail{BookInstance: *bi, Book: b}
		return nil
	})
	return out, err
}

func (r *InstanceBadger) FindByBook(ctx context.Context, bookID string) ([]catalog.BookInstance, error) {
	instances, err := findAll[catalog.BookInstance](r.db, instancePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.BookInstance, 0)
	for _, bi := range instances {
		if bi.BookID == bookID {
			out = append(out, bi)
		}
	}
	return out, nil
}

func (r *InstanceBadger) Insert(ctx context.Context, bi *catalog.BookInstance) error {
	bi.ID = uuid.NewString()
	return r.db.Update(func(txn *badger.Txn) error {
		return storeOne(txn, instancePrefix+bi.ID, bi)
	})
}

func (r *InstanceBadger) Update(ctx context.Context, bi catalog.BookInstance) (bool, error) {
	return replaceOne(r.db, instancePrefix+bi.ID, bi)
}

func (r *InstanceBadger) Delete(ctx context.Context, id string) error {
	return deleteOne(r.db, instancePrefix+id)
}

func (r *InstanceBadger) Count(ctx context.Context, f catalog.InstanceFilter) (int64, error) {
	if f.Status == "" {
		return count(r.db, instancePrefix)
	}
	instances, err := r.FindAll(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(instances)), nil
}
