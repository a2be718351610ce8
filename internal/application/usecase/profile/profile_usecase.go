package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	logger      logger.Logger
	now         func() time.Time
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ProfileWithUser is a profile joined with its owner's current name and avatar.
type ProfileWithUser struct {
	*profile.Profile
	User user.Summary `json:"user"`
}

type UpsertProfileInput struct {
	OwnerID uuid.UUID
	Patch   profile.Patch
}

func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.OwnerID.String()))

	if v := input.Patch.Violations(); len(v) > 0 {
		return nil, validation(v)
	}

	// a token outlives its account, so the owner is checked before a profile is created
	if _, err := uc.userRepo.FindByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.OwnerID.String()).WithStatus(http.StatusBadRequest)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("load profile owner failed", err)
	}

	p, err := uc.profileRepo.Upsert(ctx, input.OwnerID, input.Patch, uc.now())
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("upsert profile failed", err)
	}
	return p, nil
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

// ExecuteGetByUser serves the public lookup by user id.
func (uc *ProfileUseCase) ExecuteGetByUser(ctx context.Context, input GetProfileInput) (*ProfileWithUser, error) {
	return uc.get(ctx, input.OwnerID, "Profile not found")
}

// ExecuteGetMine serves the authenticated user's own profile.
func (uc *ProfileUseCase) ExecuteGetMine(ctx context.Context, input GetProfileInput) (*ProfileWithUser, error) {
	return uc.get(ctx, input.OwnerID, "There is no profile for this user")
}

func (uc *ProfileUseCase) get(ctx context.Context, ownerID uuid.UUID, notFoundMsg string) (*ProfileWithUser, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ProfileNotFound(notFoundMsg, ownerID)
		}
		return nil, apperror.NewInternal("get profile failed", err)
	}
	return uc.withUser(ctx, p)
}

func (uc *ProfileUseCase) ExecuteList(ctx context.Context) ([]*ProfileWithUser, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("list profiles failed", err)
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	owners, err := uc.userRepo.FindSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal("load profile owners failed", err)
	}

	out := make([]*ProfileWithUser, 0, len(profiles))
	for _, p := range profiles {
		owner, ok := owners[p.UserID]
		if !ok {
			// only reachable when an upsert raced an account deletion
			uc.logger.Warn("Profile without owner", zap.String("user_id", p.UserID.String()))
			owner = user.Summary{ID: p.UserID}
		}
		out = append(out, &ProfileWithUser{Profile: p, User: owner})
	}
	return out, nil
}

func (uc *ProfileUseCase) withUser(ctx context.Context, p *profile.Profile) (*ProfileWithUser, error) {
	owners, err := uc.userRepo.FindSummaries(ctx, []uuid.UUID{p.UserID})
	if err != nil {
		return nil, apperror.NewInternal("load profile owner failed", err)
	}
	owner, ok := owners[p.UserID]
	if !ok {
		owner = user.Summary{ID: p.UserID}
	}
	return &ProfileWithUser{Profile: p, User: owner}, nil
}

// ProfileNotFound answers 400, the status every profile route uses for a missing profile.
func ProfileNotFound(msg string, ownerID uuid.UUID) error {
	return apperror.NewAppError(apperror.ErrNotFound, msg, "user_id "+ownerID.String(), nil).
		WithStatus(http.StatusBadRequest)
}

func validation(v []profile.Violation) error {
	fields := make([]apperror.FieldError, len(v))
	for i, f := range v {
		fields[i] = apperror.FieldError{Field: f.Field, Msg: f.Msg}
	}
	return apperror.NewValidation(fields...)
}
