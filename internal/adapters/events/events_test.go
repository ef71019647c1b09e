package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"food-rescue-service/internal/domain"
	"log"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestKafkaPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "rescue-test" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got["type"] != domain.EventRouteAssigned || got["route_id"] != float64(7) {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := newKafkaPublisher(producer, "rescue-test")
	err := p.Publish(context.Background(), domain.Event{
		Type:       domain.EventRouteAssigned,
		DonationID: 42,
		RouteID:    7,
		Status:     "assigned",
		At:         at,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestKafkaPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newKafkaPublisher(producer, "")
	assert.Equal(t, DefaultTopic, p.topic)

	err := p.Publish(context.Background(), domain.Event{Type: domain.EventDonationCreated, DonationID: 1, At: at})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, p.Close())
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	err := LogPublisher{}.Publish(context.Background(), domain.Event{
		Type:       domain.EventRouteStatusChanged,
		DonationID: 3,
		RouteID:    9,
		Status:     "completed",
		At:         at,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "event=route.status_changed donation_id=3 route_id=9 status=completed")
}
