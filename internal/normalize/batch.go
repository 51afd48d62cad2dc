package normalize

import (
	"context"

	"golang.org/x/sync/errgroup"

	"proplens/domain/property"
)

// ProgressFunc receives batch progress as records finish normalizing.
// done counts completed records out of total; id names the record that
// just finished. Callbacks are serialized on a single goroutine.
type ProgressFunc func(done, total int, id string)

// BatchNormalizer normalizes collections concurrently. Normalize is pure,
// so records fan out across workers freely; output order always matches
// input order regardless of completion order.
type BatchNormalizer struct {
	normalizer *Normalizer
	workers    int
}

// NewBatchNormalizer creates a batch normalizer with the given worker
// bound. Values below 1 fall back to serial processing.
func NewBatchNormalizer(workers int) *BatchNormalizer {
	if workers < 1 {
		workers = 1
	}
	return &BatchNormalizer{normalizer: NewNormalizer(), workers: workers}
}

// Run normalizes every record, invoking progress after each completion.
// Returns early only on context cancellation.
func (b *BatchNormalizer) Run(ctx context.Context, records []*property.SourceRecord, progress ProgressFunc) ([]property.ChartProperty, error) {
	views := make([]property.ChartProperty, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	done := make(chan int, len(records))
	completed := 0
	notify := make(chan struct{})
	go func() {
		defer close(notify)
		for idx := range done {
			completed++
			if progress != nil {
				progress(completed, len(records), records[idx].ID.String())
			}
		}
	}()

	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			views[i] = b.normalizer.Normalize(rec)
			done <- i
			return nil
		})
	}

	err := g.Wait()
	close(done)
	<-notify
	if err != nil {
		return nil, err
	}
	return views, nil
}
