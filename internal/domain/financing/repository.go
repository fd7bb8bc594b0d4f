package financing

import (
	"context"
	"time"
)

type RunRepository interface {
	Create(ctx context.Context, r *Run) error
	// GetByRunID returns ErrRunNotFound when no run has the public id.
	GetByRunID(ctx context.Context, runID string) (*Run, error)
}

type RecordRepository interface {
	CreateRecords(ctx context.Context, runID uint64, recs []Record) error
	CreateFailures(ctx context.Context, runID uint64, fails []Failure) error
	ListRecords(ctx context.Context, runID uint64) ([]Record, error)
	ListFailures(ctx context.Context, runID uint64) ([]Failure, error)
}

// QuoteCache stores serialized quotes by input fingerprint. Get reports a miss
// with ok=false and a nil error.
type QuoteCache interface {
	Get(ctx context.Context, fingerprint string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error
}
