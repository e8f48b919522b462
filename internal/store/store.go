// Package store holds the record store backends behind the catalog ports.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"locallibrary/internal/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

type Config struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
	BadgerDir     string
	Logger        *slog.Logger
}

// Handle is an open record store. It is opened once per process and shared by
// every service.
type Handle struct {
	catalog.Store
	Driver string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (h *Handle) Ping(ctx context.Context) error {
	return h.ping(ctx)
}

func (h *Handle) Close(ctx context.Context) error {
	return h.close(ctx)
}

func Open(ctx context.Context, cfg Config) (*Handle, error) {
	switch cfg.Driver {
	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Handle{
			Store:  NewMongoStore(db),
			Driver: cfg.Driver,
			ping:   func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:  client.Disconnect,
		}, nil

	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &Handle{
			Store:  NewPostgresStore(pool),
			Driver: cfg.Driver,
			ping:   pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverBadger:
		db, err := OpenBadger(cfg.BadgerDir, cfg.Logger)
		if err != nil {
			return nil, err
		}
		return NewBadgerHandle(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// NewBadgerHandle wraps an open Badger database. Closing the handle closes db.
func NewBadgerHandle(db *badger.DB) *Handle {
	return &Handle{
		Store:  NewBadgerStore(db),
		Driver: DriverBadger,
		ping: func(context.Context) error {
			if db.IsClosed() {
				return fmt.Errorf("badger database is closed")
			}
			return nil
		},
		close: func(context.Context) error { return db.Close() },
	}
}

func NewMongoStore(db *mongo.Database) catalog.Store {
	return catalog.Store{
		Authors:   NewAuthorMongo(db),
		Genres:    NewGenreMongo(db),
		Books:     NewBookMongo(db),
		Instances: NewInstanceMongo(db),
	}
}

func NewPostgresStore(pool *pgxpool.Pool) catalog.Store {
	return catalog.Store{
		Authors:   NewAuthorPG(pool),
		Genres:    NewGenrePG(pool),
		Books:     NewBookPG(pool),
		Instances: NewInstancePG(pool),
	}
}

func NewBadgerStore(db *badger.DB) catalog.Store {
	return catalog.Store{
		Authors:   NewAuthorBadger(db),
		Genres:    NewGenreBadger(db),
		Books:     NewBookBadger(db),
		Instances: NewInstanceBadger(db),
	}
}
