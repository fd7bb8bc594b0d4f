package mysql

import (
	"context"

	"hdb-financing/internal/domain/financing"

	"gorm.io/gorm"
)

const insertBatchSize = 200

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

// CreateRecords stamps every record with runID before inserting.
func (r *RecordRepository) CreateRecords(ctx context.Context, runID uint64, recs []financing.Record) error {
	if len(recs) == 0 {
		return nil
	}
	for i := range recs {
		recs[i].RunID = runID
	}
	return r.db.WithContext(ctx).CreateInBatches(recs, insertBatchSize).Error
}

func (r *RecordRepository) CreateFailures(ctx context.Context, runID uint64, fails []financing.Failure) error {
	if len(fails) == 0 {
		return nil
	}
	for i := range fails {
		fails[i].RunID = runID
	}
	return r.db.WithContext(ctx).CreateInBatches(fails, insertBatchSize).Error
}

// ListRecords returns records in insertion order, which is lender then listing.
func (r *RecordRepository) ListRecords(ctx context.Context, runID uint64) ([]financing.Record, error) {
	var out []financing.Record
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *RecordRepository) ListFailures(ctx context.Context, runID uint64) ([]financing.Failure, error) {
	var out []financing.Failure
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id ASC").Find(&out).Error
	return out, err
}
