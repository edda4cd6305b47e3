package repository

import (
	"context"

	"gorm.io/gorm"
)

// RunRepository persists queued run rows for the local execution engine.
// Runs are written once at enqueue time; execution state lives elsewhere.
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
}

type runRepositoryImpl struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepositoryImpl{db: db}
}

func (r *runRepositoryImpl) Create(ctx context.Context, run *Run) error {
	return asEntityErr(gorm.G[Run](r.db).Create(ctx, run))
}
