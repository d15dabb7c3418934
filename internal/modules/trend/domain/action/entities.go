package action

import (
	"time"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"

	"gorm.io/datatypes"
)

const (
	StatusOpen     = "open"
	StatusInReview = "in_review"
	StatusResolved = "resolved"
)

const (
	TypeAssetHealthDecline = "asset_health_decline"
	TypeMechanicDecline    = "mechanic_decline"
)

// ActiveStatuses 同一资产同一类型最多一条处于这些状态
var ActiveStatuses = []string{StatusOpen, StatusInReview}

func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInReview || s == StatusResolved
}

func ValidType(t string) bool {
	return t == TypeAssetHealthDecline || t == TypeMechanicDecline
}

// TypeForSignal 评分信号到动作类型的映射
func TypeForSignal(signal string) (string, bool) {
	switch signal {
	case telemetryEntity.SignalAssetHealth:
		return TypeAssetHealthDecline, true
	case telemetryEntity.SignalMechanicQuality:
		return TypeMechanicDecline, true
	}
	return "", false
}

func SignalForType(actionType string) string {
	if actionType == TypeMechanicDecline {
		return telemetryEntity.SignalMechanicQuality
	}
	return telemetryEntity.SignalAssetHealth
}

type ScorePoint struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Detail 按 Kind 区分的动作详情，Kind 始终等于所属动作的 ActionType
type Detail struct {
	Kind   string       `json:"kind"`
	Signal string       `json:"signal"`
	Points []ScorePoint `json:"points"`
	Note   string       `json:"note,omitempty"`
}

// NewDetail 以动作类型为准生成详情，忽略调用方传入的 kind
func NewDetail(actionType string, points []ScorePoint, note string) Detail {
	return Detail{
		Kind:   actionType,
		Signal: SignalForType(actionType),
		Points: points,
		Note:   note,
	}
}

type TrendAction struct {
	ID         string `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AssetType  string `gorm:"column:asset_type;type:varchar(16);index:idx_action_asset,priority:1" json:"asset_type"`
	AssetID    string `gorm:"column:asset_id;type:varchar(36);index:idx_action_asset,priority:2" json:"asset_id"`
	ActionType string `gorm:"column:action_type;type:varchar(32)" json:"action_type"`
	Status     string `gorm:"column:status;type:varchar(16);index" json:"status"`
	// ActiveKey 未解决时为 assetType:assetID:actionType，解决后置空；唯一索引保证同类最多一条未解决
	ActiveKey  *string                    `gorm:"column:active_key;type:varchar(128);uniqueIndex:uk_action_active" json:"-"`
	Summary    string                     `gorm:"column:summary;type:text" json:"summary"`
	Detail     datatypes.JSONType[Detail] `gorm:"column:detail;type:json" json:"detail"`
	CreatedAt  time.Time                  `gorm:"column:created_at;index:idx_action_asset,priority:3" json:"created_at"`
	CreatedBy  string                     `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
	ResolvedAt *time.Time                 `gorm:"column:resolved_at" json:"resolved_at"`
	ResolvedBy *string                    `gorm:"column:resolved_by;type:varchar(64)" json:"resolved_by"`
	UpdatedAt  time.Time                  `gorm:"column:updated_at" json:"updated_at"`
}

func (TrendAction) TableName() string {
	return "trend_actions"
}

func ActiveKeyFor(assetType, assetID, actionType string) string {
	return assetType + ":" + assetID + ":" + actionType
}

func (a *TrendAction) IsActive() bool {
	return a.Status == StatusOpen || a.Status == StatusInReview
}

// Transition 设置状态并维护解决人/时间与 ActiveKey
func (a *TrendAction) Transition(next string, actorID string, now time.Time) {
	a.Status = next
	a.UpdatedAt = now
	if next == StatusResolved {
		a.ResolvedAt = &now
		a.ResolvedBy = &actorID
		a.ActiveKey = nil
		return
	}
	a.ResolvedAt = nil
	a.ResolvedBy = nil
	key := ActiveKeyFor(a.AssetType, a.AssetID, a.ActionType)
	a.ActiveKey = &key
}
