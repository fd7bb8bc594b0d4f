package uow

import (
	"context"

	"hdb-financing/internal/domain/financing"
)

// Repos are bound to the transaction they were handed out in.
type Repos struct {
	Runs    financing.RunRepository
	Records financing.RecordRepository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
