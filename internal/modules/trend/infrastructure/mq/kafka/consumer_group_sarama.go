package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	"FleetOps/internal/modules/trend/infrastructure/mq"
	"FleetOps/pkg/zlog"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// ConsumerConfig 遥测消费者只订阅一个主题
type ConsumerConfig struct {
	Brokers  []string
	GroupID  string
	Topic    string
	ClientID string
}

type saramaConsumer struct {
	cg    sarama.ConsumerGroup
	topic string
}

func NewConsumer(cfg ConsumerConfig) (mq.Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers is empty")
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, errors.New("kafka consumer group id is empty")
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, errors.New("kafka telemetry topic is empty")
	}

	sc := sarama.NewConfig()
	sc.Version = sarama.V2_8_0_0
	// 新消费组从最早的读数开始，主题保留期内的遥测不丢
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Consumer.Group.Rebalance.Timeout = 30 * time.Second
	sc.Consumer.Group.Session.Timeout = 30 * time.Second
	sc.ClientID = strings.TrimSpace(cfg.ClientID)

	cg, err := sarama.NewConsumerGroup(cfg.Brokers, strings.TrimSpace(cfg.GroupID), sc)
	if err != nil {
		return nil, err
	}
	return &saramaConsumer{cg: cg, topic: topic}, nil
}

func (c *saramaConsumer) Run(ctx context.Context, handler mq.Handler) error {
	if handler == nil {
		return errors.New("handler is nil")
	}
	h := &consumerGroupHandler{h: handler}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		// Consume 在 rebalance 后返回，需要循环重新加入
		if err := c.cg.Consume(ctx, []string{c.topic}, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
	}
}

func (c *saramaConsumer) Close() error {
	if c == nil || c.cg == nil {
		return nil
	}
	return c.cg.Close()
}

type consumerGroupHandler struct {
	h mq.Handler
}

func (consumerGroupHandler) Setup(sess sarama.ConsumerGroupSession) error {
	zlog.Info("telemetry consumer assigned", zap.Any("claims", sess.Claims()), zap.Int32("generation", sess.GenerationID()))
	return nil
}

func (consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for m := range claim.Messages() {
		err := h.h.Handle(sess.Context(), toMessage(m))
		if err != nil {
			// 不提交，rebalance 或重启后从这里重投
			zlog.Warn("telemetry message left uncommitted",
				zap.Int32("partition", m.Partition), zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}
		sess.MarkMessage(m, "")
	}
	return nil
}

func toMessage(m *sarama.ConsumerMessage) mq.Message {
	return mq.Message{
		Topic:     m.Topic,
		Key:       m.Key,
		Value:     m.Value,
		Timestamp: m.Timestamp,
	}
}
