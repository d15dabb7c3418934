package persistence

import (
	"context"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"

	"gorm.io/gorm"
)

type runRepositoryImpl struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) repository.RunRepository {
	return &runRepositoryImpl{db: db}
}

func (r *runRepositoryImpl) Append(ctx context.Context, run *digest.DigestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]digest.DigestRun, error) {
	var list []digest.DigestRun
	err := r.db.WithContext(ctx).
		Order("ran_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
