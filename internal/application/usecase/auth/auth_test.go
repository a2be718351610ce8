package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/testutil"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	users    *testutil.UserRepo
	jwtSvc   *auth.JWTService
	register *RegisterUseCase
	login    *LoginUseCase
	me       *GetMeUseCase
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	s.users = testutil.NewUserRepo()
	s.jwtSvc = auth.NewJWTService("test-secret", time.Hour)
	s.register = NewRegisterUseCase(s.users, s.jwtSvc, logger.NewNop())
	s.login = NewLoginUseCase(s.users, s.jwtSvc, logger.NewNop())
	s.me = NewGetMeUseCase(s.users)
}

func TestAuthUseCases(t *testing.T) {
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) Test_Register_Then_Login() {
	ctx := context.Background()
	out, err := s.register.Execute(ctx, RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "secret1"})
	s.Require().NoError(err)

	claims, err := s.jwtSvc.ValidateToken(out.Token)
	s.Require().NoError(err)

	u, err := s.me.Execute(ctx, claims.UserID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", u.Email)
	s.Equal("Alice", u.Name)
	s.Contains(u.AvatarURL, "gravatar.com/avatar/")
	s.NotEqual("secret1", u.PasswordHash)

	login, err := s.login.Execute(ctx, LoginInput{Email: "ALICE@example.com", Password: "secret1"})
	s.Require().NoError(err)
	s.NotEmpty(login.Token)
}

func (s *AuthUseCaseTestSuite) Test_Register_DuplicateEmail() {
	ctx := context.Background()
	_, err := s.register.Execute(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	s.Require().NoError(err)

	_, err = s.register.Execute(ctx, RegisterInput{Name: "B", Email: "a@example.com", Password: "secret2"})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperror.ToHTTPStatus(err))

	var appErr *apperror.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal("User already exists", appErr.Fields[0].Msg)
}

func (s *AuthUseCaseTestSuite) Test_Login_InvalidCredentials() {
	ctx := context.Background()
	_, err := s.register.Execute(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	s.Require().NoError(err)

	_, err = s.login.Execute(ctx, LoginInput{Email: "a@example.com", Password: "wrong"})
	s.ErrorIs(err, apperror.ErrUnauthorized)
	s.Equal(http.StatusBadRequest, apperror.ToHTTPStatus(err))

	_, err = s.login.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *AuthUseCaseTestSuite) Test_Login_StorageFailure() {
	s.users.Err = errors.New("connection refused")
	_, err := s.login.Execute(context.Background(), LoginInput{Email: "a@example.com", Password: "x"})
	s.ErrorIs(err, apperror.ErrInternal)
}

func (s *AuthUseCaseTestSuite) Test_Me_UnknownUser() {
	_, err := s.me.Execute(context.Background(), uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)
}
