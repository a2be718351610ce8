package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishAccountEvent_KeyedByUser(t *testing.T) {
	w := &recordingWriter{}
	c := &KafkaProducerClient{AccountEventsWriter: w, logger: logger.NewNop()}
	userID := uuid.New()

	err := c.PublishAccountEvent(context.Background(), AccountEventPayload{
		EventType:  AccountEventTypeDeleted,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, userID.String(), string(w.msgs[0].Key))

	var got AccountEventPayload
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, AccountEventTypeDeleted, got.EventType)
	assert.Equal(t, userID, got.UserID)
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}
