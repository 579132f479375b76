package indexer

import (
	"context"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Indexer persists enriched listings
type Indexer interface {
	Index(ctx context.Context, job *domain.JobListing) error
	BulkIndex(ctx context.Context, jobs []*domain.JobListing) error
	Close() error
}
