package request

import "time"

type ScorePoint struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

type EnsureActionRequest struct {
	AssetType  string       `json:"asset_type" binding:"required"`
	AssetID    string       `json:"asset_id" binding:"required"`
	ActionType string       `json:"action_type" binding:"required"`
	Summary    string       `json:"summary"`
	Points     []ScorePoint `json:"points"`
	Note       string       `json:"note"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type EvaluateAssetRequest struct {
	AssetType string `json:"asset_type" binding:"required"`
	AssetID   string `json:"asset_id" binding:"required"`
}

type RecordTelemetryRequest struct {
	AssetType  string    `json:"asset_type" binding:"required"`
	AssetID    string    `json:"asset_id" binding:"required"`
	Signal     string    `json:"signal" binding:"required"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}
