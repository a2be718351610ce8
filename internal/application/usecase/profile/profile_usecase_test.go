package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/testutil"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

func strp(s string) *string { return &s }

type ProfileUseCaseTestSuite struct {
	suite.Suite
	users    *testutil.UserRepo
	profiles *testutil.ProfileRepo
	uc       *ProfileUseCase
	alice    *user.User
}

func (s *ProfileUseCaseTestSuite) SetupTest() {
	s.alice = &user.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", AvatarURL: "//avatar/alice"}
	s.users = testutil.NewUserRepo(s.alice)
	s.profiles = testutil.NewProfileRepo()
	s.uc = NewProfileUseCase(s.profiles, s.users, logger.NewNop())
}

func TestProfileUseCase(t *testing.T) {
	suite.Run(t, new(ProfileUseCaseTestSuite))
}

func (s *ProfileUseCaseTestSuite) upsert(p profile.Patch) *profile.Profile {
	out, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: s.alice.ID, Patch: p})
	s.Require().NoError(err)
	return out
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_CreatesWithTrimmedSkills() {
	p := s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("node, react, git")})

	s.Equal(s.alice.ID, p.UserID)
	s.Equal([]string{"node", "react", "git"}, p.Skills)
	s.Empty(p.Experience)
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_MergesAcrossCalls() {
	first := s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go"), Company: strp("Acme"), Website: strp("https://a.dev")})
	second := s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go"), Bio: strp("hi"), Location: strp("Denver")})

	s.Equal(first.ID, second.ID, "one profile per user")
	s.Equal("Acme", second.Company)
	s.Equal("https://a.dev", second.Website)
	s.Equal("hi", second.Bio)
	s.Equal("Denver", second.Location)
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_ValidationBeforeStorage() {
	s.profiles.Err = errors.New("must not be reached")

	_, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: s.alice.ID, Patch: profile.Patch{Skills: strp("go")}})
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrInvalidInput)

	var appErr *apperror.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Require().Len(appErr.Fields, 1)
	s.Equal("status", appErr.Fields[0].Field)
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_StorageFailureIsInternal() {
	s.profiles.Err = errors.New("socket closed")
	_, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: s.alice.ID, Patch: profile.Patch{Status: strp("Dev"), Skills: strp("go")}})
	s.ErrorIs(err, apperror.ErrInternal)
	s.Equal(http.StatusInternalServerError, apperror.ToHTTPStatus(err))
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_UnknownOwnerCreatesNothing() {
	ghost := uuid.New()
	_, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: ghost, Patch: profile.Patch{Status: strp("Dev"), Skills: strp("go")}})
	s.ErrorIs(err, apperror.ErrNotFound)
	s.Equal(http.StatusBadRequest, apperror.ToHTTPStatus(err))

	_, err = s.profiles.FindByUserID(context.Background(), ghost)
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *ProfileUseCaseTestSuite) Test_Upsert_OwnerLookupFailureIsInternal() {
	s.users.Err = errors.New("connection reset")
	_, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: s.alice.ID, Patch: profile.Patch{Status: strp("Dev"), Skills: strp("go")}})
	s.ErrorIs(err, apperror.ErrInternal)
}

func (s *ProfileUseCaseTestSuite) Test_GetByUser_JoinsOwner() {
	s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go")})

	out, err := s.uc.ExecuteGetByUser(context.Background(), GetProfileInput{OwnerID: s.alice.ID})
	s.Require().NoError(err)
	s.Equal("Alice", out.User.Name)
	s.Equal("//avatar/alice", out.User.Avatar)
}

func (s *ProfileUseCaseTestSuite) Test_GetByUser_NotFoundIs400() {
	_, err := s.uc.ExecuteGetByUser(context.Background(), GetProfileInput{OwnerID: uuid.New()})
	s.ErrorIs(err, apperror.ErrNotFound)
	s.Equal(http.StatusBadRequest, apperror.ToHTTPStatus(err))

	_, err = s.uc.ExecuteGetMine(context.Background(), GetProfileInput{OwnerID: s.alice.ID})
	var appErr *apperror.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal("There is no profile for this user", appErr.Message)
}

func (s *ProfileUseCaseTestSuite) Test_List_JoinsEveryOwner() {
	bob := &user.User{ID: uuid.New(), Name: "Bob"}
	s.Require().NoError(s.users.Create(context.Background(), bob))

	s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go")})
	_, err := s.uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: bob.ID, Patch: profile.Patch{Status: strp("Student"), Skills: strp("c")}})
	s.Require().NoError(err)

	list, err := s.uc.ExecuteList(context.Background())
	s.Require().NoError(err)
	s.Require().Len(list, 2)

	names := map[string]bool{}
	for _, p := range list {
		names[p.User.Name] = true
	}
	s.True(names["Alice"])
	s.True(names["Bob"])
}

func (s *ProfileUseCaseTestSuite) Test_Experience_AddRemoveRestoresList() {
	ctx := context.Background()
	s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go")})
	_, err := s.uc.ExecuteAddExperience(ctx, AddExperienceInput{OwnerID: s.alice.ID, Entry: profile.Experience{Title: "Dev", Company: "A", From: time.Now()}})
	s.Require().NoError(err)

	before, err := s.profiles.FindByUserID(ctx, s.alice.ID)
	s.Require().NoError(err)

	added, err := s.uc.ExecuteAddExperience(ctx, AddExperienceInput{OwnerID: s.alice.ID, Entry: profile.Experience{Title: "Lead", Company: "B", From: time.Now()}})
	s.Require().NoError(err)
	s.Require().Len(added.Experience, 2)
	s.Equal("Lead", added.Experience[0].Title)

	removed, err := s.uc.ExecuteRemoveExperience(ctx, RemoveEntryInput{OwnerID: s.alice.ID, EntryID: added.Experience[0].ID})
	s.Require().NoError(err)
	s.Equal(before.Experience, removed.Experience)
}

func (s *ProfileUseCaseTestSuite) Test_Experience_RemoveUnknownIsNoop() {
	ctx := context.Background()
	s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go")})
	_, err := s.uc.ExecuteAddExperience(ctx, AddExperienceInput{OwnerID: s.alice.ID, Entry: profile.Experience{Title: "Dev", Company: "A", From: time.Now()}})
	s.Require().NoError(err)

	out, err := s.uc.ExecuteRemoveExperience(ctx, RemoveEntryInput{OwnerID: s.alice.ID, EntryID: uuid.New()})
	s.Require().NoError(err)
	s.Len(out.Experience, 1)
}

func (s *ProfileUseCaseTestSuite) Test_Experience_Validation() {
	_, err := s.uc.ExecuteAddExperience(context.Background(), AddExperienceInput{OwnerID: s.alice.ID, Entry: profile.Experience{Company: "A"}})
	s.ErrorIs(err, apperror.ErrInvalidInput)
}

func (s *ProfileUseCaseTestSuite) Test_Education_NoProfile() {
	_, err := s.uc.ExecuteAddEducation(context.Background(), AddEducationInput{
		OwnerID: s.alice.ID,
		Entry:   profile.Education{School: "MIT", Degree: "BS", FieldOfStudy: "CS", From: time.Now()},
	})
	s.ErrorIs(err, apperror.ErrNotFound)
	s.Equal(http.StatusBadRequest, apperror.ToHTTPStatus(err))
}

func (s *ProfileUseCaseTestSuite) Test_Education_AddRemove() {
	ctx := context.Background()
	s.upsert(profile.Patch{Status: strp("Developer"), Skills: strp("go")})

	out, err := s.uc.ExecuteAddEducation(ctx, AddEducationInput{
		OwnerID: s.alice.ID,
		Entry:   profile.Education{School: "MIT", Degree: "BS", FieldOfStudy: "CS", From: time.Now()},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Education, 1)

	out, err = s.uc.ExecuteRemoveEducation(ctx, RemoveEntryInput{OwnerID: s.alice.ID, EntryID: out.Education[0].ID})
	s.Require().NoError(err)
	s.Empty(out.Education)
}

func TestGithubRepos(t *testing.T) {
	lookup := &testutil.RepoLookup{Repos: map[string]json.RawMessage{"octo": json.RawMessage(`[{"name":"hello"}]`)}}
	uc := NewGithubReposUseCase(lookup)

	body, err := uc.Execute(context.Background(), "octo")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"hello"}]`, string(body))

	_, err = uc.Execute(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrUpstream)
	assert.Equal(t, http.StatusNotFound, apperror.ToHTTPStatus(err))

	lookup.Err = errors.New("dial tcp: timeout")
	_, err = uc.Execute(context.Background(), "octo")
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
