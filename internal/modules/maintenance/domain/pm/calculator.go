package pm

import (
	"math"
	"sort"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
)

const (
	StatusDueSoon = "due_soon"
	StatusOverdue = "overdue"
)

const (
	UnitMiles = "miles"
	UnitHours = "hours"
)

// Rule 某类资产的保养间隔
type Rule struct {
	AssetType     string
	Unit          string
	Interval      float64
	DueSoonWindow float64
}

func newRule(assetType, unit string, interval, minWindow float64) Rule {
	return Rule{
		AssetType:     assetType,
		Unit:          unit,
		Interval:      interval,
		DueSoonWindow: math.Max(minWindow, interval/10),
	}
}

var (
	VehicleRule   = newRule(telemetryEntity.AssetVehicle, UnitMiles, 5000, 100)
	EquipmentRule = newRule(telemetryEntity.AssetEquipment, UnitHours, 250, 10)
)

func RuleFor(assetType string) (Rule, bool) {
	switch assetType {
	case telemetryEntity.AssetVehicle:
		return VehicleRule, true
	case telemetryEntity.AssetEquipment:
		return EquipmentRule, true
	}
	return Rule{}, false
}

// BoardRow 保养看板的一行，每次查询现算，不落库
type BoardRow struct {
	AssetID          string   `json:"asset_id"`
	AssetType        string   `json:"asset_type"`
	AssetName        string   `json:"asset_name"`
	AssetStatus      string   `json:"asset_status"`
	Unit             string   `json:"unit"`
	CurrentValue     float64  `json:"current_value"`
	LastServiceValue *float64 `json:"last_service_value"`
	DueAt            float64  `json:"due_at"`
	Status           string   `json:"status"`
	OverdueAmount    float64  `json:"overdue_amount"`
	Remaining        float64  `json:"remaining"`
}

// Evaluate 计算单个资产；当前值缺失、非有限数或为负时跳过，未到期也返回 false
func Evaluate(rule Rule, assetID string, current *float64, lastService *float64) (BoardRow, bool) {
	if current == nil {
		return BoardRow{}, false
	}
	cur := *current
	if math.IsNaN(cur) || math.IsInf(cur, 0) || cur < 0 {
		return BoardRow{}, false
	}
	last := 0.0
	if lastService != nil {
		last = *lastService
	}
	dueAt := last + rule.Interval

	row := BoardRow{
		AssetID:          assetID,
		AssetType:        rule.AssetType,
		Unit:             rule.Unit,
		CurrentValue:     cur,
		LastServiceValue: lastService,
		DueAt:            dueAt,
		Remaining:        dueAt - cur,
	}
	switch {
	case cur >= dueAt:
		row.Status = StatusOverdue
		row.OverdueAmount = cur - dueAt
		row.Remaining = 0
	case dueAt-cur <= rule.DueSoonWindow:
		row.Status = StatusDueSoon
	default:
		return BoardRow{}, false
	}
	return row, true
}

// SortBoard 逾期在前（逾期量降序），即将到期在后（剩余量升序）
func SortBoard(rows []BoardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Status != b.Status {
			return a.Status == StatusOverdue
		}
		if a.Status == StatusOverdue {
			if a.OverdueAmount != b.OverdueAmount {
				return a.OverdueAmount > b.OverdueAmount
			}
		} else if a.Remaining != b.Remaining {
			return a.Remaining < b.Remaining
		}
		if a.AssetType != b.AssetType {
			return a.AssetType < b.AssetType
		}
		return a.AssetID < b.AssetID
	})
}
