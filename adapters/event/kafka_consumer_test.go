package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

// scriptedReader replays msgs, then reports cancellation.
type scriptedReader struct {
	msgs      []kafka.Message
	committed []int64
}

func (r *scriptedReader) FetchMessage(_ context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *scriptedReader) Close() error { return nil }

func accountMessage(t *testing.T, offset int64, userID uuid.UUID) kafka.Message {
	t.Helper()
	v, err := json.Marshal(AccountEventPayload{EventType: AccountEventTypeDeleted, UserID: userID})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: v}
}

func testConsumer(r messageReader) *AccountEventConsumer {
	return &AccountEventConsumer{reader: r, logger: logger.NewNop(), backoff: time.Millisecond, maxBackoff: 4 * time.Millisecond}
}

func TestAccountEventConsumer_SkipsMalformed(t *testing.T) {
	id := uuid.New()
	r := &scriptedReader{msgs: []kafka.Message{
		{Offset: 1, Value: []byte("{not json")},
		accountMessage(t, 2, id),
	}}

	var seen []uuid.UUID
	err := testConsumer(r).Run(context.Background(), func(_ context.Context, p AccountEventPayload) error {
		seen = append(seen, p.UserID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, seen)
	assert.Equal(t, []int64{1, 2}, r.committed)
}

func TestAccountEventConsumer_RetriesFailureBeforeNextMessage(t *testing.T) {
	flaky, next := uuid.New(), uuid.New()
	r := &scriptedReader{msgs: []kafka.Message{
		accountMessage(t, 1, flaky),
		accountMessage(t, 2, next),
	}}

	var seen []uuid.UUID
	attempts := 0
	err := testConsumer(r).Run(context.Background(), func(_ context.Context, p AccountEventPayload) error {
		seen = append(seen, p.UserID)
		if p.UserID == flaky {
			attempts++
			if attempts < 3 {
				return errors.New("mongo down")
			}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []uuid.UUID{flaky, flaky, flaky, next}, seen, "the next message waits for the failing one")
	assert.Equal(t, []int64{1, 2}, r.committed)
}

func TestAccountEventConsumer_CancelDuringRetryLeavesUncommitted(t *testing.T) {
	stuck := uuid.New()
	r := &scriptedReader{msgs: []kafka.Message{
		accountMessage(t, 1, stuck),
		accountMessage(t, 2, uuid.New()),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := 0
	err := testConsumer(r).Run(ctx, func(_ context.Context, p AccountEventPayload) error {
		require.Equal(t, stuck, p.UserID)
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("mongo down")
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Empty(t, r.committed)
	assert.Len(t, r.msgs, 1, "nothing past the failing message is fetched")
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(logger.NewNop())
	assert.NoError(t, p.PublishPostEvent(context.Background(), PostEventPayload{EventType: PostEventTypeCreated}))
	assert.NoError(t, p.PublishAccountEvent(context.Background(), AccountEventPayload{EventType: AccountEventTypeDeleted}))
}
