package entity

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	SignalAssetHealth     = "asset_health"
	SignalMechanicQuality = "mechanic_quality"
)

const (
	ServiceKindPMEvent            = "pm_event"
	ServiceKindMaintenanceLog     = "maintenance_log"
	ServiceKindMaintenanceRequest = "maintenance_request"
)

// CompletedServiceKinds 只有这些记录代表一次已完成的保养
var CompletedServiceKinds = []string{ServiceKindPMEvent, ServiceKindMaintenanceLog}

// TelemetryPoint 一条评分数据
type TelemetryPoint struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AssetType  string    `gorm:"column:asset_type;type:varchar(16);index:idx_point_series,priority:1" json:"asset_type"`
	AssetID    string    `gorm:"column:asset_id;type:varchar(36);index:idx_point_series,priority:2" json:"asset_id"`
	Signal     string    `gorm:"column:metric;type:varchar(32);index:idx_point_series,priority:3" json:"signal"`
	Value      float64   `gorm:"column:value" json:"value"`
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_point_series,priority:4" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (TelemetryPoint) TableName() string {
	return "telemetry_points"
}

var (
	ErrInvalidAssetType = errors.New("asset_type must be vehicle or equipment")
	ErrInvalidSignal    = errors.New("signal must be asset_health or mechanic_quality")
	ErrInvalidValue     = errors.New("value must be a finite number")
)

func ValidSignal(s string) bool {
	return s == SignalAssetHealth || s == SignalMechanicQuality
}

func (p *TelemetryPoint) Validate() error {
	if !ValidAssetType(p.AssetType) {
		return ErrInvalidAssetType
	}
	if strings.TrimSpace(p.AssetID) == "" {
		return errors.New("asset_id is required")
	}
	if !ValidSignal(p.Signal) {
		return ErrInvalidSignal
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return ErrInvalidValue
	}
	return nil
}

// ServiceEvent 保养/维修历史，UsageValue 是当时的里程或小时数
type ServiceEvent struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AssetType  string    `gorm:"column:asset_type;type:varchar(16);index:idx_service_asset,priority:1" json:"asset_type"`
	AssetID    string    `gorm:"column:asset_id;type:varchar(36);index:idx_service_asset,priority:2" json:"asset_id"`
	Kind       string    `gorm:"column:kind;type:varchar(32)" json:"kind"`
	UsageValue *float64  `gorm:"column:usage_value" json:"usage_value"`
	OccurredAt time.Time `gorm:"column:occurred_at;index:idx_service_asset,priority:3" json:"occurred_at"`
	Note       string    `gorm:"column:note;type:text" json:"note"`
}

func (ServiceEvent) TableName() string {
	return "service_events"
}
