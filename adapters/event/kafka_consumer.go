package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const (
	AccountEventsGroupID = "account-cleanup-group"

	defaultRetryBackoff    = 500 * time.Millisecond
	defaultMaxRetryBackoff = 30 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AccountEventHandler processes one decoded account event. A returned error makes the
// consumer call it again with the same payload after a backoff; the partition does not
// advance until it succeeds.
type AccountEventHandler func(ctx context.Context, payload AccountEventPayload) error

type AccountEventConsumer struct {
	reader     messageReader
	logger     logger.Logger
	backoff    time.Duration
	maxBackoff time.Duration
}

func NewAccountEventConsumer(cfg config.Config, log logger.Logger) *AccountEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicAccountEvents,
		GroupID:  AccountEventsGroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &AccountEventConsumer{
		reader:     reader,
		logger:     log,
		backoff:    defaultRetryBackoff,
		maxBackoff: defaultMaxRetryBackoff,
	}
}

// Run blocks until ctx is cancelled or the reader fails permanently.
func (c *AccountEventConsumer) Run(ctx context.Context, handle AccountEventHandler) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicAccountEvents))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		var payload AccountEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			c.logger.Warn("Skipping malformed account event", zap.Error(err), zap.ByteString("key", msg.Key))
			c.commit(ctx, msg)
			continue
		}

		c.logger.Info("Processing account event",
			zap.String("event_type", string(payload.EventType)),
			zap.String("user_id", payload.UserID.String()),
			zap.Int64("offset", msg.Offset))

		if !c.handleUntilDone(ctx, handle, payload) {
			return nil
		}
		c.commit(ctx, msg)
	}
}

// handleUntilDone retries handle with exponential backoff. It reports false when ctx ends
// first, in which case the message stays uncommitted.
func (c *AccountEventConsumer) handleUntilDone(ctx context.Context, handle AccountEventHandler, payload AccountEventPayload) bool {
	wait := c.backoff
	for attempt := 1; ; attempt++ {
		err := handle(ctx, payload)
		if err == nil {
			return true
		}
		c.logger.Error("Failed to process account event", err,
			zap.String("user_id", payload.UserID.String()),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", wait))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		if wait *= 2; wait > c.maxBackoff {
			wait = c.maxBackoff
		}
	}
}

func (c *AccountEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}

func (c *AccountEventConsumer) Close() error {
	return c.reader.Close()
}
