package service

import (
	"context"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
)

// EventPublisher emits domain events. Publishing is best effort: callers log failures
// and never fail the request that produced the event.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, payload event.PostEventPayload) error
	PublishAccountEvent(ctx context.Context, payload event.AccountEventPayload) error
}
