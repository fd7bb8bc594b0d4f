package mysql

import (
	"context"
	"errors"

	"hdb-financing/internal/domain/financing"

	"gorm.io/gorm"
)

type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func (r *RunRepository) Create(ctx context.Context, run *financing.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) GetByRunID(ctx context.Context, runID string) (*financing.Run, error) {
	var out financing.Run
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, financing.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
