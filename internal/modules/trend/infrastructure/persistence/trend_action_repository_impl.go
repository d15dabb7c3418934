package persistence

import (
	"context"
	"errors"

	"FleetOps/internal/modules/trend/domain/action"
	"FleetOps/internal/modules/trend/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type trendActionRepositoryImpl struct {
	db *gorm.DB
}

func NewTrendActionRepository(db *gorm.DB) repository.TrendActionRepository {
	return &trendActionRepositoryImpl{db: db}
}

func (r *trendActionRepositoryImpl) FindActive(ctx context.Context, assetType, assetID, actionType string) (*action.TrendAction, error) {
	var a action.TrendAction
	err := r.db.WithContext(ctx).
		Where("asset_type = ? AND asset_id = ? AND action_type = ? AND status IN ?", assetType, assetID, actionType, action.ActiveStatuses).
		Order("created_at DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *trendActionRepositoryImpl) CreateIfNoActive(ctx context.Context, a *action.TrendAction) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "active_key"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *trendActionRepositoryImpl) GetByID(ctx context.Context, id string) (*action.TrendAction, error) {
	var a action.TrendAction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, action.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *trendActionRepositoryImpl) UpdateStatus(ctx context.Context, a *action.TrendAction) error {
	err := r.db.WithContext(ctx).
		Model(&action.TrendAction{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":      a.Status,
			"active_key":  a.ActiveKey,
			"resolved_at": a.ResolvedAt,
			"resolved_by": a.ResolvedBy,
			"updated_at":  a.UpdatedAt,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return action.ErrActiveConflict
	}
	return err
}

func (r *trendActionRepositoryImpl) ListRecent(ctx context.Context, assetType, assetID string, limit int) ([]action.TrendAction, error) {
	var list []action.TrendAction
	err := r.db.WithContext(ctx).
		Where("asset_type = ? AND asset_id = ?", assetType, assetID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *trendActionRepositoryImpl) ListActive(ctx context.Context) ([]action.TrendAction, error) {
	var list []action.TrendAction
	err := r.db.WithContext(ctx).
		Where("status IN ?", action.ActiveStatuses).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
