package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenOutput struct {
	Token string `json:"token"`
}

var tracer = otel.Tracer("auth_usecase")

// invalidCredentials answers 400 so a caller cannot tell an unknown email from a wrong password.
func invalidCredentials(details string) error {
	return apperror.NewUnauthorized(details, nil).WithStatus(http.StatusBadRequest)
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*TokenOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			err = invalidCredentials("unknown email")
		} else {
			err = apperror.NewInternal("failed to load user", err)
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := invalidCredentials("incorrect password")
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &TokenOutput{Token: token}, nil
}
