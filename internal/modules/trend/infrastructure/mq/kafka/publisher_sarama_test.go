package kafka

import (
	"context"
	"errors"
	"testing"

	"FleetOps/internal/modules/trend/infrastructure/mq"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSendsKeyAndValue(t *testing.T) {
	mp := mocks.NewSyncProducer(t, producerConfig("fleetops"))
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		key, _ := m.Key.Encode()
		if m.Topic != "fleet.trend.actions" || string(key) != "vehicle:v-9" {
			return errors.New("unexpected message")
		}
		return nil
	})
	p := &saramaPublisher{p: mp}

	require.NoError(t, p.Publish(context.Background(), mq.Message{
		Topic: "fleet.trend.actions",
		Key:   []byte("vehicle:v-9"),
		Value: []byte(`{"event":"trend.action.opened"}`),
	}))
	require.NoError(t, p.Close())
}

func TestPublishReturnsBrokerError(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	p := &saramaPublisher{p: mp}

	err := p.Publish(context.Background(), mq.Message{Topic: "fleet.trend.actions", Value: []byte("{}")})
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, p.Close())
}

func TestPublishChecksTopicAndContext(t *testing.T) {
	p := &saramaPublisher{p: mocks.NewSyncProducer(t, nil)}
	assert.Error(t, p.Publish(context.Background(), mq.Message{Value: []byte("{}")}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, mq.Message{Topic: "t"}), context.Canceled)
	require.NoError(t, p.Close())
}

func TestProducerConfigIsValid(t *testing.T) {
	sc := producerConfig(" fleetops ")
	require.NoError(t, sc.Validate())
	assert.Equal(t, "fleetops", sc.ClientID)
	assert.True(t, sc.Producer.Idempotent)
}
