package sift

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SearchBatch runs Search for every query concurrently. results[i] holds the
// results for queries[i]. Searches only read the index, so they share it
// without copying.
//
// Cancelling ctx stops queries that have not started yet and returns
// ctx.Err().
func (e *Engine) SearchBatch(ctx context.Context, queries []string, opts ...SearchOption) ([][]Result, error) {
	results := make([][]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, query := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Search(query, opts...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
