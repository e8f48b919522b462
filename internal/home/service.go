// Package home serves the catalog index page.
package home

import (
	"context"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/platform/fanout"
	"locallibrary/internal/view"
)

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

// Counts returns the record totals shown on the index page.
func (s *Service) Counts(ctx context.Context) (view.Counts, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var c view.Counts
	g := fanout.New(ctx)
	fanout.Fetch(g, "book_count", &c.Books, s.store.Books.Count)
	fanout.Fetch(g, "book_instance_count", &c.Instances, func(ctx context.Context) (int64, error) {
		return s.store.Instances.Count(ctx, catalog.InstanceFilter{})
	})
	fanout.Fetch(g, "book_instance_available_count", &c.InstancesAvailable, func(ctx context.Context) (int64, error) {
		return s.store.Instances.Count(ctx, catalog.InstanceFilter{Status: catalog.StatusAvailable})
	})
	fanout.Fetch(g, "author_count", &c.Authors, s.store.Authors.Count)
	fanout.Fetch(g, "genre_count", &c.Genres, s.store.Genres.Count)
	if err := g.Wait(); err != nil {
		return view.Counts{}, err
	}
	return c, nil
}
