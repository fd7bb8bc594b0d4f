package mysql

import (
	"context"

	"hdb-financing/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx commits when fn returns nil and rolls back otherwise.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(uow.Repos{
			Runs:    &RunRepository{db: tx},
			Records: &RecordRepository{db: tx},
		})
	})
}
