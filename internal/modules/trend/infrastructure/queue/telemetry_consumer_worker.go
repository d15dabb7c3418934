package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	"FleetOps/internal/modules/trend/application/service"
	"FleetOps/internal/modules/trend/infrastructure/mq"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
)

// TelemetryMessage 遥测主题的消息体
type TelemetryMessage struct {
	AssetType  string    `json:"asset_type"`
	AssetID    string    `json:"asset_id"`
	Signal     string    `json:"signal"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

type TelemetryConsumerWorker struct {
	consumer mq.Consumer
	svc      service.ActionService
}

func NewTelemetryConsumerWorker(consumer mq.Consumer, svc service.ActionService) *TelemetryConsumerWorker {
	return &TelemetryConsumerWorker{consumer: consumer, svc: svc}
}

func (w *TelemetryConsumerWorker) Run(ctx context.Context) error {
	if w == nil || w.consumer == nil {
		return errors.New("consumer is nil")
	}
	if w.svc == nil {
		return errors.New("action service is nil")
	}
	return w.consumer.Run(ctx, w)
}

func (w *TelemetryConsumerWorker) Handle(ctx context.Context, msg mq.Message) error {
	var m TelemetryMessage
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		// 坏消息直接跳过，不阻塞分区
		zlog.Warn("telemetry consumer invalid payload", zap.String("topic", msg.Topic), zap.Error(err))
		return nil
	}

	// 设备没带采集时间时用 broker 记录时间
	recordedAt := m.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = msg.Timestamp
	}

	res, err := w.svc.IngestTelemetry(ctx, &telemetryEntity.TelemetryPoint{
		AssetType:  m.AssetType,
		AssetID:    m.AssetID,
		Signal:     m.Signal,
		Value:      m.Value,
		RecordedAt: recordedAt,
	})
	if err != nil {
		var ce *xerr.CodeError
		if errors.As(err, &ce) && ce.Code == xerr.BadRequest {
			zlog.Warn("telemetry consumer rejected point", zap.String("asset_id", m.AssetID), zap.String("reason", ce.Message))
			return nil
		}
		zlog.Error("telemetry consumer ingest failed", zap.String("asset_id", m.AssetID), zap.Error(err))
		return err
	}
	for _, s := range res.Signals {
		if s.Created {
			zlog.Info("telemetry consumer opened trend action",
				zap.String("asset_type", res.AssetType),
				zap.String("asset_id", res.AssetID),
				zap.String("action_id", s.ActionID))
		}
	}
	return nil
}
