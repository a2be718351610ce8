package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

// ProcessAccountEventUseCase runs in the worker. Returning an error makes the consumer
// retry the same event, so every step must be safe to repeat.
type ProcessAccountEventUseCase struct {
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewProcessAccountEventUseCase(
	pRepo post.Repository,
	prRepo profile.Repository,
	uRepo user.Repository,
	uploader service.Uploader,
	log logger.Logger,
) *ProcessAccountEventUseCase {
	return &ProcessAccountEventUseCase{
		postRepo:    pRepo,
		profileRepo: prRepo,
		userRepo:    uRepo,
		uploader:    uploader,
		logger:      log,
	}
}

func (uc *ProcessAccountEventUseCase) Execute(ctx context.Context, payload event.AccountEventPayload) error {
	log := uc.logger.With(zap.String("event_type", string(payload.EventType)), zap.String("user_id", payload.UserID.String()))

	switch payload.EventType {
	case event.AccountEventTypeDeleted:
		if err := deleteDocuments(ctx, uc.postRepo, uc.profileRepo, payload.UserID); err != nil {
			return fmt.Errorf("delete account documents failed: %w", err)
		}
		if err := uc.userRepo.Delete(ctx, payload.UserID); err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		if payload.AvatarPublicID != "" && uc.uploader != nil {
			if err := uc.uploader.Delete(ctx, payload.AvatarPublicID); err != nil {
				return fmt.Errorf("delete avatar failed: %w", err)
			}
		}
		log.Info("Account cleanup finished")
	case event.AccountEventTypeAvatarUpdated:
		log.Debug("Avatar updated, nothing to do")
	default:
		log.Warn("Unknown account event, skip")
	}
	return nil
}
