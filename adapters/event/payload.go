package event

import (
	"time"

	"github.com/google/uuid"
)

type PostEventType string

const (
	PostEventTypeCreated PostEventType = "post.created"
	PostEventTypeDeleted PostEventType = "post.deleted"
)

type PostEventPayload struct {
	EventType  PostEventType `json:"event_type"`
	PostID     uuid.UUID     `json:"post_id"`
	UserID     uuid.UUID     `json:"user_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type AccountEventType string

const (
	AccountEventTypeDeleted       AccountEventType = "account.deleted"
	AccountEventTypeAvatarUpdated AccountEventType = "account.avatar_updated"
)

// AccountEventPayload is consumed by the worker. AvatarPublicID is set when the account
// owned an uploaded avatar that should be removed from media storage.
type AccountEventPayload struct {
	EventType      AccountEventType `json:"event_type"`
	UserID         uuid.UUID        `json:"user_id"`
	AvatarPublicID string           `json:"avatar_public_id,omitempty"`
	OccurredAt     time.Time        `json:"occurred_at"`
}
