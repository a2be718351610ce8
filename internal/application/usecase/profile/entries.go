package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type AddExperienceInput struct {
	OwnerID uuid.UUID
	Entry   profile.Experience
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*profile.Profile, error) {
	if v := input.Entry.Violations(); len(v) > 0 {
		return nil, validation(v)
	}
	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) {
		p.AddExperience(input.Entry)
	})
}

type AddEducationInput struct {
	OwnerID uuid.UUID
	Entry   profile.Education
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*profile.Profile, error) {
	if v := input.Entry.Violations(); len(v) > 0 {
		return nil, validation(v)
	}
	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) {
		p.AddEducation(input.Entry)
	})
}

type RemoveEntryInput struct {
	OwnerID uuid.UUID
	EntryID uuid.UUID
}

// ExecuteRemoveExperience drops the entry with the given id. An unknown id changes nothing
// and the stored profile is returned as is.
func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*profile.Profile, error) {
	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) {
		if !p.RemoveExperience(input.EntryID) {
			uc.logger.Debug("Experience entry not found", zap.String("entry_id", input.EntryID.String()))
		}
	})
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*profile.Profile, error) {
	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) {
		if !p.RemoveEducation(input.EntryID) {
			uc.logger.Debug("Education entry not found", zap.String("entry_id", input.EntryID.String()))
		}
	})
}

func (uc *ProfileUseCase) mutate(ctx context.Context, ownerID uuid.UUID, fn func(p *profile.Profile)) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ProfileNotFound("There is no profile for this user", ownerID)
		}
		return nil, apperror.NewInternal("get profile failed", err)
	}

	fn(p)

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ProfileNotFound("There is no profile for this user", ownerID)
		}
		return nil, apperror.NewInternal("save profile failed", err)
	}
	return p, nil
}
