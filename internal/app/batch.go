package app

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/moodmix/internal/adapters/mq/queue"
	"github.com/okian/moodmix/internal/adapters/mq/worker"
	"github.com/okian/moodmix/pkg/logger"
	"github.com/okian/moodmix/pkg/metrics"
)

// BatchResult is the outcome of one request in a batch.
type BatchResult struct {
	Result Result
	Err    error
}

// CurateBatch curates independent requests concurrently on at most
// worker_count goroutines. Results keep the order of reqs. Entries that never
// ran carry ctx.Err() or ErrBatchTaskFailed.
func (c *Curator) CurateBatch(ctx context.Context, reqs []Request) []BatchResult {
	results := make([]BatchResult, len(reqs))
	if len(reqs) == 0 {
		return results
	}
	metrics.RecordBatchSize(len(reqs))

	batchID := uuid.NewString()
	log := c.logger.With(logger.String("batch_id", batchID))

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(reqs)))
	pool := worker.NewPool(min(c.workerCount, len(reqs)), q, log)

	// Each task owns its index, and pool.Wait orders the writes before the
	// reads below.
	ran := make([]bool, len(reqs))
	for i, req := range reqs {
		ok := q.Enqueue(ctx, queue.Task{
			ID: batchID + "/" + strconv.Itoa(i),
			Run: func(ctx context.Context) {
				res, err := c.Curate(ctx, req)
				results[i] = BatchResult{Result: res, Err: err}
				ran[i] = true
			},
		})
		if !ok {
			break
		}
	}
	_ = q.Close()

	pool.Start(ctx)
	pool.Wait()

	failed := 0
	for i := range results {
		if ran[i] {
			if results[i].Err != nil {
				failed++
			}
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = ErrBatchTaskFailed
		}
		results[i] = BatchResult{Err: err}
		failed++
	}

	log.Info(ctx, "batch curated",
		logger.Int("requests", len(reqs)),
		logger.Int("failed", failed),
		logger.Int("workers", pool.Size()),
	)
	return results
}
