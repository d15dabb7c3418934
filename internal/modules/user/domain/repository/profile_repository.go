package repository

import (
	"context"

	"FleetOps/internal/modules/user/domain/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	// ListByRoles 摘要收件人：owner / mechanic
	ListByRoles(ctx context.Context, roles []string) ([]entity.Profile, error)
}
