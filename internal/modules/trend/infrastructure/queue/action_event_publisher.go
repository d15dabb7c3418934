package queue

import (
	"context"
	"encoding/json"
	"time"

	"FleetOps/internal/modules/trend/domain/action"
	"FleetOps/internal/modules/trend/infrastructure/mq"
)

const EventActionOpened = "trend.action.opened"

type ActionOpenedEvent struct {
	Event      string    `json:"event"`
	ActionID   string    `json:"action_id"`
	AssetType  string    `json:"asset_type"`
	AssetID    string    `json:"asset_id"`
	ActionType string    `json:"action_type"`
	Summary    string    `json:"summary"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActionEventPublisher 把新开的趋势动作写到 kafka，key 为资产，保证同资产有序
type ActionEventPublisher struct {
	pub   mq.Publisher
	topic string
}

func NewActionEventPublisher(pub mq.Publisher, topic string) *ActionEventPublisher {
	return &ActionEventPublisher{pub: pub, topic: topic}
}

func (p *ActionEventPublisher) PublishActionOpened(ctx context.Context, a *action.TrendAction) error {
	if p == nil || p.pub == nil || p.topic == "" {
		return nil
	}
	body, err := json.Marshal(ActionOpenedEvent{
		Event:      EventActionOpened,
		ActionID:   a.ID,
		AssetType:  a.AssetType,
		AssetID:    a.AssetID,
		ActionType: a.ActionType,
		Summary:    a.Summary,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
	})
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, mq.Message{
		Topic: p.topic,
		Key:   []byte(a.AssetType + ":" + a.AssetID),
		Value: body,
	})
}
