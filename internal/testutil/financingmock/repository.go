package financingmock

import (
	"context"
	"time"

	"hdb-financing/internal/domain/financing"
)

var (
	_ financing.RunRepository    = (*RunRepo)(nil)
	_ financing.RecordRepository = (*RecordRepo)(nil)
	_ financing.QuoteCache       = (*Cache)(nil)
)

// RunRepo is a function-backed mock that satisfies financing.RunRepository.
type RunRepo struct {
	CreateFn     func(ctx context.Context, r *financing.Run) error
	GetByRunIDFn func(ctx context.Context, runID string) (*financing.Run, error)
}

func (m *RunRepo) Create(ctx context.Context, r *financing.Run) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RunRepo) GetByRunID(ctx context.Context, runID string) (*financing.Run, error) {
	if m.GetByRunIDFn != nil {
		return m.GetByRunIDFn(ctx, runID)
	}
	return nil, financing.ErrRunNotFound
}

// RecordRepo is a function-backed mock that satisfies financing.RecordRepository.
type RecordRepo struct {
	CreateRecordsFn  func(ctx context.Context, runID uint64, recs []financing.Record) error
	CreateFailuresFn func(ctx context.Context, runID uint64, fails []financing.Failure) error
	ListRecordsFn    func(ctx context.Context, runID uint64) ([]financing.Record, error)
	ListFailuresFn   func(ctx context.Context, runID uint64) ([]financing.Failure, error)
}

func (m *RecordRepo) CreateRecords(ctx context.Context, runID uint64, recs []financing.Record) error {
	if m.CreateRecordsFn != nil {
		return m.CreateRecordsFn(ctx, runID, recs)
	}
	return nil
}

func (m *RecordRepo) CreateFailures(ctx context.Context, runID uint64, fails []financing.Failure) error {
	if m.CreateFailuresFn != nil {
		return m.CreateFailuresFn(ctx, runID, fails)
	}
	return nil
}

func (m *RecordRepo) ListRecords(ctx context.Context, runID uint64) ([]financing.Record, error) {
	if m.ListRecordsFn != nil {
		return m.ListRecordsFn(ctx, runID)
	}
	return nil, nil
}

func (m *RecordRepo) ListFailures(ctx context.Context, runID uint64) ([]financing.Failure, error) {
	if m.ListFailuresFn != nil {
		return m.ListFailuresFn(ctx, runID)
	}
	return nil, nil
}

// Cache is a function-backed financing.QuoteCache. Unset functions behave as
// an always-missing cache.
type Cache struct {
	GetFn func(ctx context.Context, fingerprint string) ([]byte, bool, error)
	SetFn func(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error
}

func (m *Cache) Get(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, fingerprint)
	}
	return nil, false, nil
}

func (m *Cache) Set(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, fingerprint, payload, ttl)
	}
	return nil
}
