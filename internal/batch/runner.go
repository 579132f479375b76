package batch

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/project-tktt/go-jobstats/internal/domain"
	"github.com/project-tktt/go-jobstats/internal/fx"
	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

// StageCounts aggregates per-stage outcomes of one batch run. Failures
// are counted here instead of being swallowed inline, so a run's log
// line tells the whole story.
type StageCounts struct {
	Consumed    int
	Normalized  int
	ParseFailed int
	RateMissing int
	Outliers    int
}

// Runner drives one batch of raw listings through normalization,
// currency conversion and outlier flagging. Normalization is per-record
// and runs in parallel; the batch-relative stages run serially after.
type Runner struct {
	norm        *normalizer.Normalizer
	rates       fx.RateSource
	concurrency int
}

func NewRunner(norm *normalizer.Normalizer, rates fx.RateSource, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{norm: norm, rates: rates, concurrency: concurrency}
}

// Run processes one batch. Every input yields an output record; records
// whose parsing degraded carry sentinel values rather than being
// dropped.
func (r *Runner) Run(ctx context.Context, raws []*domain.RawListing) ([]*domain.JobListing, StageCounts, error) {
	runID := uuid.NewString()
	counts := StageCounts{Consumed: len(raws)}
	if len(raws) == 0 {
		return nil, counts, nil
	}

	log.Printf("batch %s: %d listings", runID, len(raws))

	// Stage 1: parallel per-record normalization. Slots keep input order
	// so the serial stages see a deterministic sequence.
	jobs := make([]*domain.JobListing, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for idx, raw := range raws {
		idx, raw := idx, raw
		g.Go(func() error {
			job, err := r.norm.Normalize(gctx, raw)
			if err != nil {
				return err
			}
			jobs[idx] = job
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, counts, err
	}
	counts.Normalized = len(jobs)

	// Stage 2: serial conversion to VND/month. The rate cache memoizes
	// one lookup per currency for the whole batch.
	cache := fx.NewCache(r.rates)
	for _, job := range jobs {
		if job.MedianSalary.Kind != domain.AmountNumber {
			if job.RawSalaryText != "" && !job.IsQuantifiable && job.MedianSalary.Kind == domain.AmountMissing {
				counts.ParseFailed++
			}
			continue
		}
		rate := 1.0
		if domain.Supported[job.Currency] && job.Currency != domain.CurrencyVND {
			v, ok := cache.Rate(ctx, job.Currency)
			if !ok {
				counts.RateMissing++
			}
			rate = v
		}
		normalizer.ConvertListing(job, rate)
	}

	// Stage 3: outlier flagging over the whole batch.
	counts.Outliers = normalizer.FlagOutliers(jobs)

	log.Printf("batch %s done: normalized=%d parse_failed=%d rate_missing=%d outliers=%d",
		runID, counts.Normalized, counts.ParseFailed, counts.RateMissing, counts.Outliers)

	return jobs, counts, nil
}
