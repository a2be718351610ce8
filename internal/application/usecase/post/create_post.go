package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type CreatePostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   service.EventPublisher
	logger   logger.Logger
}

func NewCreatePostUseCase(pRepo post.Repository, uRepo user.Repository, events service.EventPublisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

type CreatePostInput struct {
	OwnerID uuid.UUID
	Text    string
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*post.Post, error) {
	author, err := loadAuthor(ctx, uc.userRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	newPost, err := post.New(author, input.Text, time.Now().UTC())
	if err != nil {
		return nil, textRequired()
	}

	if err := uc.postRepo.Save(ctx, newPost); err != nil {
		return nil, apperror.NewInternal("save post failed", err)
	}

	publishAsync(uc.events, uc.logger, event.PostEventPayload{
		EventType: event.PostEventTypeCreated,
		PostID:    newPost.ID,
		UserID:    newPost.UserID,
	})
	return newPost, nil
}

// loadAuthor reads the name and avatar that get copied onto a new post or comment.
func loadAuthor(ctx context.Context, repo user.Repository, id uuid.UUID) (post.Author, error) {
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return post.Author{}, apperror.NewNotFound("User", id.String())
		}
		return post.Author{}, apperror.NewInternal("load author failed", err)
	}
	return post.Author{ID: u.ID, Name: u.Name, Avatar: u.AvatarURL}, nil
}

func textRequired() error {
	return apperror.NewValidation(apperror.FieldError{Field: "text", Msg: "Text is required"})
}

func publishAsync(events service.EventPublisher, log logger.Logger, payload event.PostEventPayload) {
	payload.OccurredAt = time.Now().UTC()
	go func() {
		if err := events.PublishPostEvent(context.Background(), payload); err != nil {
			log.Error("Failed to publish Kafka post event", err,
				zap.String("event_type", string(payload.EventType)),
				zap.String("post_id", payload.PostID.String()))
		}
	}()
}
