package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxResolveWorkers bounds concurrent per-post lookups.
const maxResolveWorkers = 8

// orderedMap applies fn to every element of in with at most limit calls in
// flight. out[i] always holds fn(in[i]) regardless of completion order. The
// first error cancels the context handed to the remaining calls.
func orderedMap[T, R any](ctx context.Context, in []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range in {
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
