package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicDetailDefaults(t *testing.T) {
	td := topicDetail(TopicSpec{Name: "fleet.telemetry"})
	assert.Equal(t, int32(1), td.NumPartitions)
	assert.Equal(t, int16(1), td.ReplicationFactor)
	assert.Nil(t, td.ConfigEntries)
}

func TestTopicDetailRetention(t *testing.T) {
	td := topicDetail(TopicSpec{Name: "fleet.telemetry", Partitions: 3, Retention: 24 * time.Hour})
	assert.Equal(t, int32(3), td.NumPartitions)
	require.NotNil(t, td.ConfigEntries["retention.ms"])
	assert.Equal(t, "86400000", *td.ConfigEntries["retention.ms"])
}

func TestEnsureTopicsRequiresBrokers(t *testing.T) {
	assert.Error(t, EnsureTopics(TopicAdminConfig{}, TopicSpec{Name: "x"}))
}
