package service

import (
	"context"
	"fmt"

	"FleetOps/internal/modules/maintenance/application/dto/request"
	"FleetOps/internal/modules/maintenance/domain/pm"
	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	telemetryRepository "FleetOps/internal/modules/telemetry/domain/repository"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
)

type BoardService interface {
	Board(ctx context.Context, q request.BoardQuery) ([]pm.BoardRow, error)
}

type boardServiceImpl struct {
	telemetryRepo telemetryRepository.TelemetryRepository
}

func NewBoardService(telemetryRepo telemetryRepository.TelemetryRepository) BoardService {
	return &boardServiceImpl{telemetryRepo: telemetryRepo}
}

type usageAsset struct {
	id     string
	name   string
	status string
	usage  *float64
}

func (s *boardServiceImpl) Board(ctx context.Context, q request.BoardQuery) ([]pm.BoardRow, error) {
	if q.Status != "" && q.Status != pm.StatusDueSoon && q.Status != pm.StatusOverdue {
		return nil, xerr.New(xerr.BadRequest, "status must be due_soon or overdue")
	}
	if q.AssetType != "" && !telemetryEntity.ValidAssetType(q.AssetType) {
		return nil, xerr.New(xerr.BadRequest, "asset_type must be vehicle or equipment")
	}

	rows := make([]pm.BoardRow, 0)
	if q.AssetType == "" || q.AssetType == telemetryEntity.AssetVehicle {
		vs, err := s.telemetryRepo.ListVehicles(ctx)
		if err != nil {
			zlog.Error("pm board list vehicles failed", zap.Error(err))
			return nil, fmt.Errorf("list vehicles: %w", err)
		}
		assets := make([]usageAsset, 0, len(vs))
		for _, v := range vs {
			assets = append(assets, usageAsset{id: v.ID, name: v.Name, status: v.Status, usage: v.Mileage})
		}
		part, err := s.evaluate(ctx, pm.VehicleRule, assets, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	if q.AssetType == "" || q.AssetType == telemetryEntity.AssetEquipment {
		es, err := s.telemetryRepo.ListEquipment(ctx)
		if err != nil {
			zlog.Error("pm board list equipment failed", zap.Error(err))
			return nil, fmt.Errorf("list equipment: %w", err)
		}
		assets := make([]usageAsset, 0, len(es))
		for _, e := range es {
			assets = append(assets, usageAsset{id: e.ID, name: e.Name, status: e.Status, usage: e.Hours})
		}
		part, err := s.evaluate(ctx, pm.EquipmentRule, assets, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}

	pm.SortBoard(rows)
	return rows, nil
}

func (s *boardServiceImpl) evaluate(ctx context.Context, rule pm.Rule, assets []usageAsset, q request.BoardQuery) ([]pm.BoardRow, error) {
	candidates := make([]usageAsset, 0, len(assets))
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		if !util.ContainsFold(a.name, q.Search) && !util.ContainsFold(a.id, q.Search) {
			continue
		}
		candidates = append(candidates, a)
		ids = append(ids, a.id)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	lastService, err := s.telemetryRepo.LatestServiceUsage(ctx, rule.AssetType, ids)
	if err != nil {
		zlog.Error("pm board read service history failed", zap.String("asset_type", rule.AssetType), zap.Error(err))
		return nil, fmt.Errorf("read service history: %w", err)
	}

	out := make([]pm.BoardRow, 0, len(candidates))
	for _, a := range candidates {
		var last *float64
		if v, ok := lastService[a.id]; ok {
			last = &v
		}
		row, ok := pm.Evaluate(rule, a.id, a.usage, last)
		if !ok {
			continue
		}
		if q.Status != "" && row.Status != q.Status {
			continue
		}
		row.AssetName = a.name
		row.AssetStatus = a.status
		out = append(out, row)
	}
	return out, nil
}
