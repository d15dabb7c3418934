package repository

import (
	"context"

	"FleetOps/internal/modules/telemetry/domain/entity"
)

// TelemetryRepository 遥测与资产读模型
type TelemetryRepository interface {
	AppendPoint(ctx context.Context, p *entity.TelemetryPoint) error
	// RecentScores 返回最近 limit 条，按时间正序（最老的在前）
	RecentScores(ctx context.Context, assetType, assetID, signal string, limit int) ([]entity.TelemetryPoint, error)
	// LatestServiceUsage 每个资产最近一次完成保养时的使用量，没有记录的资产不出现在结果里
	LatestServiceUsage(ctx context.Context, assetType string, assetIDs []string) (map[string]float64, error)
	ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
	ListEquipment(ctx context.Context) ([]entity.Equipment, error)
	AssetLabels(ctx context.Context, refs []entity.AssetRef) (map[entity.AssetRef]entity.AssetLabel, error)
}
