package persistence

import (
	"context"

	"FleetOps/internal/modules/user/domain/entity"
	"FleetOps/internal/modules/user/domain/repository"

	"gorm.io/gorm"
)

type profileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepositoryImpl) ListByRoles(ctx context.Context, roles []string) ([]entity.Profile, error) {
	if len(roles) == 0 {
		return []entity.Profile{}, nil
	}
	var list []entity.Profile
	err := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
