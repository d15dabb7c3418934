package repository

import (
	"context"

	"FleetOps/internal/modules/trend/domain/action"
)

type TrendActionRepository interface {
	// FindActive 查找未解决的同类动作，不存在时返回 nil, nil
	FindActive(ctx context.Context, assetType, assetID, actionType string) (*action.TrendAction, error)
	// CreateIfNoActive 插入新动作，已存在未解决的同类动作时不插入并返回 false
	CreateIfNoActive(ctx context.Context, a *action.TrendAction) (bool, error)
	GetByID(ctx context.Context, id string) (*action.TrendAction, error)
	// UpdateStatus 持久化 status / active_key / resolved_*，重新打开与现有未解决动作冲突时返回 action.ErrActiveConflict
	UpdateStatus(ctx context.Context, a *action.TrendAction) error
	ListRecent(ctx context.Context, assetType, assetID string, limit int) ([]action.TrendAction, error)
	ListActive(ctx context.Context) ([]action.TrendAction, error)
}
