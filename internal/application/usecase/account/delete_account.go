package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

var tracer = otel.Tracer("account_usecase")

const avatarFolder = "avatars"

// AvatarPublicID is the media storage id of a user's uploaded avatar.
func AvatarPublicID(userID uuid.UUID) string {
	return avatarFolder + "/" + userID.String()
}

// DeleteAccountUseCase removes posts, then the profile, then the user. Every step is
// idempotent, so a failed run can simply be repeated.
type DeleteAccountUseCase struct {
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	tx          service.TxRunner
	events      service.EventPublisher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(
	pRepo post.Repository,
	prRepo profile.Repository,
	uRepo user.Repository,
	tx service.TxRunner,
	events service.EventPublisher,
	log logger.Logger,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		postRepo:    pRepo,
		profileRepo: prRepo,
		userRepo:    uRepo,
		tx:          tx,
		events:      events,
		logger:      log,
	}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID.String()))

	if err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return deleteDocuments(ctx, uc.postRepo, uc.profileRepo, userID)
	}); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("delete posts and profile failed", err)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("delete user failed", err)
	}

	// The worker repeats the document deletes, which covers writes that raced with this
	// request, and drops the avatar from media storage.
	err := uc.events.PublishAccountEvent(ctx, event.AccountEventPayload{
		EventType:      event.AccountEventTypeDeleted,
		UserID:         userID,
		AvatarPublicID: AvatarPublicID(userID),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		uc.logger.Error("Failed to publish account deleted event", err, zap.String("user_id", userID.String()))
	}

	uc.logger.Info("Account deleted", zap.String("user_id", userID.String()))
	return nil
}

func deleteDocuments(ctx context.Context, posts post.Repository, profiles profile.Repository, userID uuid.UUID) error {
	if err := posts.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return profiles.DeleteByUserID(ctx, userID)
}
