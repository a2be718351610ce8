package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type DeletePostUseCase struct {
	postRepo post.Repository
	events   service.EventPublisher
	logger   logger.Logger
}

func NewDeletePostUseCase(pRepo post.Repository, events service.EventPublisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{
		postRepo: pRepo,
		events:   events,
		logger:   log,
	}
}

type DeletePostInput struct {
	PostID  uuid.UUID
	OwnerID uuid.UUID
}

func (uc *DeletePostUseCase) Execute(ctx context.Context, input DeletePostInput) error {
	p, err := findPost(ctx, uc.postRepo, input.PostID)
	if err != nil {
		return err
	}
	if !p.OwnedBy(input.OwnerID) {
		return apperror.NewPermissionDenied("post " + input.PostID.String() + " belongs to another user")
	}

	if err := uc.postRepo.Delete(ctx, input.PostID); err != nil {
		return mapPostErr(err, input.PostID, "delete post failed")
	}

	publishAsync(uc.events, uc.logger, event.PostEventPayload{
		EventType: event.PostEventTypeDeleted,
		PostID:    input.PostID,
		UserID:    input.OwnerID,
	})
	return nil
}
