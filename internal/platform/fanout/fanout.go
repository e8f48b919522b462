// Package fanout runs independent named reads concurrently and joins them.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Group is one fan-out. Results are written into caller-owned variables, so
// they are looked up by name, never by arrival order.
type Group struct {
	g   *errgroup.Group
	ctx context.Context
}

// New starts a fan-out bound to ctx. The context handed to each branch is
// cancelled as soon as any branch fails.
func New(ctx context.Context) *Group {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx}
}

// Go schedules an untyped branch.
func (f *Group) Go(name string, fn func(ctx context.Context) error) {
	f.g.Go(func() error {
		if err := fn(f.ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}

// Wait blocks until every branch is done and returns the first failure. On
// error the destinations of the other branches must be ignored.
func (f *Group) Wait() error {
	return f.g.Wait()
}

// Fetch schedules fn and stores its result in dst once it succeeds.
func Fetch[T any](f *Group, name string, dst *T, fn func(ctx context.Context) (T, error)) {
	f.Go(name, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}
