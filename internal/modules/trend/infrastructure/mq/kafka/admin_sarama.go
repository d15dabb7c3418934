package kafka

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type TopicAdminConfig struct {
	Brokers  []string
	ClientID string
}

type TopicSpec struct {
	Name              string
	Partitions        int32
	ReplicationFactor int16
	// Retention 为 0 时使用 broker 默认值
	Retention time.Duration
}

// EnsureTopics 启动时补齐遥测和动作事件的 topic，已存在的不做修改
func EnsureTopics(cfg TopicAdminConfig, specs ...TopicSpec) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("kafka brokers is empty")
	}

	sc := sarama.NewConfig()
	sc.Version = sarama.V2_8_0_0
	sc.ClientID = strings.TrimSpace(cfg.ClientID)

	admin, err := sarama.NewClusterAdmin(cfg.Brokers, sc)
	if err != nil {
		return err
	}
	defer admin.Close()

	existing, err := admin.ListTopics()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return errors.New("kafka topic is empty")
		}
		if _, ok := existing[name]; ok {
			continue
		}
		if err := admin.CreateTopic(name, topicDetail(spec), false); err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return err
		}
	}
	return nil
}

func topicDetail(spec TopicSpec) *sarama.TopicDetail {
	td := &sarama.TopicDetail{
		NumPartitions:     spec.Partitions,
		ReplicationFactor: spec.ReplicationFactor,
	}
	if td.NumPartitions <= 0 {
		td.NumPartitions = 1
	}
	if td.ReplicationFactor <= 0 {
		td.ReplicationFactor = 1
	}
	if spec.Retention > 0 {
		ms := strconv.FormatInt(spec.Retention.Milliseconds(), 10)
		td.ConfigEntries = map[string]*string{"retention.ms": &ms}
	}
	return td
}
