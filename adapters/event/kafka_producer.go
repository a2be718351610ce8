package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const (
	// TopicPostEvents is published for downstream consumers outside this repo
	// (feeds, notifications); the worker only reads TopicAccountEvents.
	TopicPostEvents    = "post.events"
	TopicAccountEvents = "account.events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	PostEventsWriter    messageWriter
	AccountEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	postWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicPostEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	accountWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicAccountEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		PostEventsWriter:    postWriter,
		AccountEventsWriter: accountWriter,
		logger:              log,
	}, nil
}

// Messages are keyed by user id so events for one account stay ordered on a partition.
func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, payload PostEventPayload) error {
	return publish(ctx, c.PostEventsWriter, payload.UserID.String(), payload)
}

func (c *KafkaProducerClient) PublishAccountEvent(ctx context.Context, payload AccountEventPayload) error {
	return publish(ctx, c.AccountEventsWriter, payload.UserID.String(), payload)
}

func publish(ctx context.Context, w messageWriter, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write kafka message failed: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
	if c.AccountEventsWriter != nil {
		c.AccountEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}
