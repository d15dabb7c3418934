package initial

import (
	"time"

	"FleetOps/internal/config"
	"FleetOps/internal/modules/trend/infrastructure/mq"
	"FleetOps/internal/modules/trend/infrastructure/mq/kafka"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
)

// KafkaPublisher 未配置 broker 时为 nil，动作事件不外发
var KafkaPublisher mq.Publisher

func init() {
	conf := config.GetConfig().KafkaConfig
	if len(conf.Brokers) == 0 {
		zlog.Info("kafka not configured, skipping")
		return
	}

	specs := []kafka.TopicSpec{}
	if conf.TelemetryTopic != "" {
		specs = append(specs, kafka.TopicSpec{Name: conf.TelemetryTopic, Partitions: 3, Retention: 7 * 24 * time.Hour})
	}
	if conf.ActionTopic != "" {
		specs = append(specs, kafka.TopicSpec{Name: conf.ActionTopic, Partitions: 1})
	}
	if len(specs) > 0 {
		if err := kafka.EnsureTopics(kafka.TopicAdminConfig{Brokers: conf.Brokers, ClientID: conf.ClientID}, specs...); err != nil {
			zlog.Warn("kafka ensure topics failed", zap.Error(err))
		}
	}

	pub, err := kafka.NewSaramaPublisher(kafka.PublisherConfig{Brokers: conf.Brokers, ClientID: conf.ClientID})
	if err != nil {
		zlog.Error("kafka publisher init failed", zap.Error(err))
		return
	}
	KafkaPublisher = pub
	zlog.Info("kafka publisher ready", zap.Strings("brokers", conf.Brokers))
}
