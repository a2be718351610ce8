package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type UserRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	userRepo    user.Repository
}

func (s *UserRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.userRepo = NewPostgresUserRepo(s.dbPool, logger.NewNop())
}

func (s *UserRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestUserRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(UserRepoIntegrationTestSuite))
}

func (s *UserRepoIntegrationTestSuite) newUser(email string) *user.User {
	return &user.User{
		ID:           uuid.New(),
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "hashedpassword",
		AvatarURL:    "//gravatar/x",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *UserRepoIntegrationTestSuite) Test_Create_And_Find() {
	ctx := context.Background()
	u := s.newUser("find@example.com")
	s.Require().NoError(s.userRepo.Create(ctx, u))

	byEmail, err := s.userRepo.FindByEmail(ctx, u.Email)
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)
	s.Equal(u.Name, byEmail.Name)

	byID, err := s.userRepo.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Email, byID.Email)
	s.True(u.CreatedAt.Equal(byID.CreatedAt))

	_, err = s.userRepo.FindByID(ctx, uuid.New())
	s.ErrorIs(err, user.ErrUserNotFound)
}

func (s *UserRepoIntegrationTestSuite) Test_Create_DuplicateEmail() {
	ctx := context.Background()
	s.Require().NoError(s.userRepo.Create(ctx, s.newUser("dup@example.com")))

	err := s.userRepo.Create(ctx, s.newUser("dup@example.com"))
	s.ErrorIs(err, user.ErrEmailTaken)
}

func (s *UserRepoIntegrationTestSuite) Test_FindSummaries() {
	ctx := context.Background()
	a, b := s.newUser("a@example.com"), s.newUser("b@example.com")
	s.Require().NoError(s.userRepo.Create(ctx, a))
	s.Require().NoError(s.userRepo.Create(ctx, b))

	got, err := s.userRepo.FindSummaries(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal(a.Name, got[a.ID].Name)
	s.Equal(b.AvatarURL, got[b.ID].Avatar)
}

func (s *UserRepoIntegrationTestSuite) Test_UpdateAvatar_And_Delete() {
	ctx := context.Background()
	u := s.newUser("avatar@example.com")
	s.Require().NoError(s.userRepo.Create(ctx, u))

	s.Require().NoError(s.userRepo.UpdateAvatar(ctx, u.ID, "https://cdn/new.png"))
	got, err := s.userRepo.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("https://cdn/new.png", got.AvatarURL)

	s.Require().NoError(s.userRepo.Delete(ctx, u.ID))
	s.Require().NoError(s.userRepo.Delete(ctx, u.ID), "delete is idempotent")
	s.ErrorIs(s.userRepo.UpdateAvatar(ctx, u.ID, "x"), user.ErrUserNotFound)
}
