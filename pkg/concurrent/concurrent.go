package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every item with at most workers goroutines at a time.
// workers <= 0 means no limit. The context passed to action is cancelled as soon
// as one action fails; ForEach returns the first error.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, item := range items {
		item := item
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return action(gctx, item)
		})
	}

	return g.Wait()
}

// ForEachMute runs action for every item like ForEach but never stops early.
// Errors are passed to onError, which may be nil.
func ForEachMute[T any](ctx context.Context, items []T, workers int, action func(context.Context, T) error, onError func(T, error)) {
	g := errgroup.Group{}
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := action(ctx, item); err != nil && onError != nil {
				onError(item, err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
