package respond

import (
	"time"

	"FleetOps/internal/modules/trend/domain/action"
)

type TrendActionItem struct {
	ID         string        `json:"id"`
	AssetType  string        `json:"asset_type"`
	AssetID    string        `json:"asset_id"`
	ActionType string        `json:"action_type"`
	Status     string        `json:"status"`
	Summary    string        `json:"summary"`
	Detail     action.Detail `json:"detail"`
	CreatedAt  time.Time     `json:"created_at"`
	CreatedBy  string        `json:"created_by"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	ResolvedBy *string       `json:"resolved_by,omitempty"`
}

func NewTrendActionItem(a *action.TrendAction) TrendActionItem {
	return TrendActionItem{
		ID:         a.ID,
		AssetType:  a.AssetType,
		AssetID:    a.AssetID,
		ActionType: a.ActionType,
		Status:     a.Status,
		Summary:    a.Summary,
		Detail:     a.Detail.Data(),
		CreatedAt:  a.CreatedAt,
		CreatedBy:  a.CreatedBy,
		ResolvedAt: a.ResolvedAt,
		ResolvedBy: a.ResolvedBy,
	}
}

type EnsureActionRespond struct {
	Created bool            `json:"created"`
	Action  TrendActionItem `json:"action"`
}

type SignalEvaluation struct {
	Signal     string  `json:"signal"`
	ActionType string  `json:"action_type"`
	Points     int     `json:"points"`
	Declining  bool    `json:"declining"`
	Created    bool    `json:"created"`
	ActionID   string  `json:"action_id,omitempty"`
	Latest     float64 `json:"latest,omitempty"`
}

type EvaluateRespond struct {
	AssetType string             `json:"asset_type"`
	AssetID   string             `json:"asset_id"`
	Signals   []SignalEvaluation `json:"signals"`
}
