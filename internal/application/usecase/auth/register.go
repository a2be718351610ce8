package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*TokenOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := uc.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, userExists()
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, apperror.NewInternal("failed to check email", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    auth.GravatarURL(email),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, userExists()
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}
	uc.logger.Info("User registered", zap.String("user_id", u.ID.String()))

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}
	return &TokenOutput{Token: token}, nil
}

func userExists() error {
	return apperror.NewValidation(apperror.FieldError{Field: "email", Msg: "User already exists"})
}

type GetMeUseCase struct {
	userRepo user.Repository
}

func NewGetMeUseCase(repo user.Repository) *GetMeUseCase {
	return &GetMeUseCase{userRepo: repo}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", userID.String())
		}
		return nil, apperror.NewInternal("failed to load user", err)
	}
	return u, nil
}
