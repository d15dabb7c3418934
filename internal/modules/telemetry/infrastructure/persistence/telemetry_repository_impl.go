package persistence

import (
	"context"
	"time"

	"FleetOps/internal/modules/telemetry/domain/entity"
	"FleetOps/internal/modules/telemetry/domain/repository"
	"FleetOps/pkg/util"

	"gorm.io/gorm"
)

type telemetryRepositoryImpl struct {
	db *gorm.DB
}

func NewTelemetryRepository(db *gorm.DB) repository.TelemetryRepository {
	return &telemetryRepositoryImpl{db: db}
}

func (r *telemetryRepositoryImpl) AppendPoint(ctx context.Context, p *entity.TelemetryPoint) error {
	if p.ID == "" {
		p.ID = util.GenerateUUID()
	}
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *telemetryRepositoryImpl) RecentScores(ctx context.Context, assetType, assetID, signal string, limit int) ([]entity.TelemetryPoint, error) {
	if limit <= 0 {
		limit = 3
	}
	var list []entity.TelemetryPoint
	err := r.db.WithContext(ctx).
		Where("asset_type = ? AND asset_id = ? AND metric = ?", assetType, assetID, signal).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	// 倒序查询后翻转成时间正序
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (r *telemetryRepositoryImpl) LatestServiceUsage(ctx context.Context, assetType string, assetIDs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(assetIDs))
	if len(assetIDs) == 0 {
		return out, nil
	}
	var events []entity.ServiceEvent
	err := r.db.WithContext(ctx).
		Select("asset_id", "usage_value", "occurred_at").
		Where("asset_type = ? AND asset_id IN ? AND kind IN ? AND usage_value IS NOT NULL",
			assetType, assetIDs, entity.CompletedServiceKinds).
		Order("occurred_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if _, seen := out[ev.AssetID]; seen || ev.UsageValue == nil {
			continue
		}
		out[ev.AssetID] = *ev.UsageValue
	}
	return out, nil
}

func (r *telemetryRepositoryImpl) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	var list []entity.Vehicle
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *telemetryRepositoryImpl) ListEquipment(ctx context.Context) ([]entity.Equipment, error) {
	var list []entity.Equipment
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *telemetryRepositoryImpl) AssetLabels(ctx context.Context, refs []entity.AssetRef) (map[entity.AssetRef]entity.AssetLabel, error) {
	out := make(map[entity.AssetRef]entity.AssetLabel, len(refs))
	var vehicleIDs, equipmentIDs []string
	for _, ref := range refs {
		switch ref.Type {
		case entity.AssetVehicle:
			vehicleIDs = append(vehicleIDs, ref.ID)
		case entity.AssetEquipment:
			equipmentIDs = append(equipmentIDs, ref.ID)
		}
	}
	if len(vehicleIDs) > 0 {
		var vs []entity.Vehicle
		if err := r.db.WithContext(ctx).Select("id", "name", "status").Where("id IN ?", vehicleIDs).Find(&vs).Error; err != nil {
			return nil, err
		}
		for _, v := range vs {
			out[entity.AssetRef{Type: entity.AssetVehicle, ID: v.ID}] = entity.AssetLabel{Name: v.Name, Status: v.Status}
		}
	}
	if len(equipmentIDs) > 0 {
		var es []entity.Equipment
		if err := r.db.WithContext(ctx).Select("id", "name", "status").Where("id IN ?", equipmentIDs).Find(&es).Error; err != nil {
			return nil, err
		}
		for _, e := range es {
			out[entity.AssetRef{Type: entity.AssetEquipment, ID: e.ID}] = entity.AssetLabel{Name: e.Name, Status: e.Status}
		}
	}
	return out, nil
}
