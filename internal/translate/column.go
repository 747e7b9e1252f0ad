package translate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of translations in flight in Column.
const DefaultConcurrency = 4

// Column translates values in place. With rows <= 0 every value goes through tr; otherwise
// only the first rows values do, and they are sent without language detection. Order is
// preserved.
func Column(ctx context.Context, tr *BestEffort, values []string, rows, concurrency int) {
	n := len(values)
	active := tr
	if rows > 0 {
		if rows < n {
			n = rows
		}
		forced := *tr
		forced.Force = true
		active = &forced
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			values[i] = active.Translate(gctx, values[i])
			return nil
		})
	}
	_ = g.Wait()
}
