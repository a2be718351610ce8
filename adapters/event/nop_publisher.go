package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

// NopPublisher stands in for Kafka when no brokers are configured. Events are only logged.
type NopPublisher struct {
	logger logger.Logger
}

func NewNopPublisher(log logger.Logger) *NopPublisher {
	return &NopPublisher{logger: log}
}

func (p *NopPublisher) PublishPostEvent(_ context.Context, payload PostEventPayload) error {
	p.logger.Debug("Post event dropped, no broker configured",
		zap.String("event_type", string(payload.EventType)),
		zap.String("post_id", payload.PostID.String()))
	return nil
}

func (p *NopPublisher) PublishAccountEvent(_ context.Context, payload AccountEventPayload) error {
	p.logger.Debug("Account event dropped, no broker configured",
		zap.String("event_type", string(payload.EventType)),
		zap.String("user_id", payload.UserID.String()))
	return nil
}
