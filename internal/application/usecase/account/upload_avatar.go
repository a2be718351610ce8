package account

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type UploadAvatarUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	events   service.EventPublisher
	logger   logger.Logger
}

func NewUploadAvatarUseCase(uRepo user.Repository, uploader service.Uploader, events service.EventPublisher, log logger.Logger) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{
		userRepo: uRepo,
		uploader: uploader,
		events:   events,
		logger:   log,
	}
}

type UploadAvatarInput struct {
	UserID uuid.UUID
	File   io.Reader
}

// Execute replaces the user's avatar. Posts and comments keep the avatar they were created with.
func (uc *UploadAvatarUseCase) Execute(ctx context.Context, input UploadAvatarInput) (*user.User, error) {
	if input.File == nil {
		return nil, apperror.NewValidation(apperror.FieldError{Field: "file", Msg: "File is required"})
	}

	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("load user failed", err)
	}

	url, err := uc.uploader.Upload(ctx, input.File, avatarFolder, input.UserID.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdateAvatar(ctx, input.UserID, url); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			go uc.dropOrphanedAvatar(input.UserID)
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to store avatar url", err)
	}

	err = uc.events.PublishAccountEvent(ctx, event.AccountEventPayload{
		EventType:  event.AccountEventTypeAvatarUpdated,
		UserID:     input.UserID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("Failed to publish avatar updated event", zap.String("user_id", input.UserID.String()), zap.Error(err))
	}

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("reload user failed", err)
	}
	return u, nil
}

// dropOrphanedAvatar removes an image uploaded for an account deleted mid-request.
func (uc *UploadAvatarUseCase) dropOrphanedAvatar(userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := uc.uploader.Delete(ctx, AvatarPublicID(userID)); err != nil {
		uc.logger.Error("Failed to delete orphaned avatar", err, zap.String("user_id", userID.String()))
	}
}
