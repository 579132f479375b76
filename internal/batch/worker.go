package batch

import (
	"context"
	"log"

	"github.com/project-tktt/go-jobstats/internal/cleaner"
	"github.com/project-tktt/go-jobstats/internal/indexer"
	"github.com/project-tktt/go-jobstats/internal/queue"
)

// Worker drains the raw-listing queue in batches and feeds them through
// the Runner. One loop per process: the outlier stage is relative to the
// batch mean, so a batch must stay together instead of being split
// across competing consumers.
type Worker struct {
	consumer *queue.Consumer
	cleaner  *cleaner.Cleaner
	runner   *Runner
	indexers []indexer.Indexer

	batchSize int
}

func NewWorker(consumer *queue.Consumer, clean *cleaner.Cleaner, runner *Runner, batchSize int, indexers ...indexer.Indexer) *Worker {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Worker{
		consumer:  consumer,
		cleaner:   clean,
		runner:    runner,
		indexers:  indexers,
		batchSize: batchSize,
	}
}

// Run consumes until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// ConsumeBatch blocks on the first item, so an idle queue does
		// not spin.
		raws, err := w.consumer.ConsumeBatch(ctx, w.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("consume error: %v", err)
			continue
		}
		if len(raws) == 0 {
			continue
		}

		for _, raw := range raws {
			raw.Fields = w.cleaner.CleanFields(raw.Fields)
		}

		jobs, counts, err := w.runner.Run(ctx, raws)
		if err != nil {
			log.Printf("batch error after %d consumed: %v", counts.Consumed, err)
			continue
		}

		for _, idx := range w.indexers {
			if err := idx.BulkIndex(ctx, jobs); err != nil {
				log.Printf("index error: %v", err)
			}
		}
	}
}
