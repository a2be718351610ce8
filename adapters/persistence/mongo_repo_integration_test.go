package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type MongoRepoIntegrationTestSuite struct {
	suite.Suite
	container   *mongodb.MongoDBContainer
	client      *mongo.Client
	db          *mongo.Database
	profileRepo profile.Repository
	postRepo    post.Repository
}

func (s *MongoRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		s.T().Fatalf("Failed to start mongo container: %s", err)
	}
	s.container = container

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		s.T().Fatalf("Failed to connect mongo: %s", err)
	}
	s.client = client
	s.db = client.Database("devconnect_test")

	if err := EnsureIndexes(ctx, s.db); err != nil {
		s.T().Fatalf("Failed to create indexes: %s", err)
	}
	s.profileRepo = NewMongoProfileRepo(s.db, logger.NewNop())
	s.postRepo = NewMongoPostRepo(s.db, logger.NewNop())
}

func (s *MongoRepoIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate mongo container: %s", err)
		}
	}
}

func TestMongoRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(MongoRepoIntegrationTestSuite))
}

func strp(s string) *string { return &s }

func (s *MongoRepoIntegrationTestSuite) Test_Profile_UpsertMerges() {
	ctx := context.Background()
	userID := uuid.New()

	first, err := s.profileRepo.Upsert(ctx, userID, profile.Patch{
		Status: strp("Developer"), Skills: strp("node, react, git"), Company: strp("Acme"),
		Social: profile.SocialPatch{Twitter: strp("tw")},
	}, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal([]string{"node", "react", "git"}, first.Skills)
	s.Empty(first.Experience)

	second, err := s.profileRepo.Upsert(ctx, userID, profile.Patch{
		Status: strp("Lead"), Skills: strp("go"), Bio: strp("hi"),
		Social: profile.SocialPatch{YouTube: strp("yt")},
	}, time.Now().UTC())
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("Acme", second.Company)
	s.Equal("hi", second.Bio)
	s.Equal("Lead", second.Status)
	s.Equal("tw", second.Social.Twitter)
	s.Equal("yt", second.Social.YouTube)
	s.True(first.CreatedAt.Equal(second.CreatedAt), "creation date is only set on insert")
}

func (s *MongoRepoIntegrationTestSuite) Test_Profile_SaveEntriesAndDelete() {
	ctx := context.Background()
	userID := uuid.New()
	p, err := s.profileRepo.Upsert(ctx, userID, profile.Patch{Status: strp("Dev"), Skills: strp("go")}, time.Now().UTC())
	s.Require().NoError(err)

	to := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	id := p.AddExperience(profile.Experience{Title: "Dev", Company: "A", From: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), To: &to})
	p.AddEducation(profile.Education{School: "MIT", Degree: "BS", FieldOfStudy: "CS", From: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)})
	s.Require().NoError(s.profileRepo.Save(ctx, p))

	got, err := s.profileRepo.FindByUserID(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(got.Experience, 1)
	s.Equal(id, got.Experience[0].ID)
	s.True(to.Equal(*got.Experience[0].To))
	s.Len(got.Education, 1)

	s.Require().NoError(s.profileRepo.DeleteByUserID(ctx, userID))
	s.Require().NoError(s.profileRepo.DeleteByUserID(ctx, userID))
	_, err = s.profileRepo.FindByUserID(ctx, userID)
	s.ErrorIs(err, profile.ErrProfileNotFound)
	s.ErrorIs(s.profileRepo.Save(ctx, p), profile.ErrProfileNotFound)
}

func (s *MongoRepoIntegrationTestSuite) newPost(userID uuid.UUID, text string, at time.Time) *post.Post {
	p, err := post.New(post.Author{ID: userID, Name: "Alice"}, text, at)
	s.Require().NoError(err)
	s.Require().NoError(s.postRepo.Save(context.Background(), p))
	return p
}

func (s *MongoRepoIntegrationTestSuite) Test_Post_LikesAndComments() {
	ctx := context.Background()
	p := s.newPost(uuid.New(), "hello", time.Now().UTC())
	a, b := uuid.New(), uuid.New()

	_, err := s.postRepo.PushLike(ctx, p.ID, post.Like{ID: uuid.New(), UserID: a})
	s.Require().NoError(err)
	got, err := s.postRepo.PushLike(ctx, p.ID, post.Like{ID: uuid.New(), UserID: b})
	s.Require().NoError(err)
	s.Require().Len(got.Likes, 2)
	s.Equal(b, got.Likes[0].UserID, "most recent like first")

	got, err = s.postRepo.PullLike(ctx, p.ID, b)
	s.Require().NoError(err)
	s.Require().Len(got.Likes, 1)
	s.Equal(a, got.Likes[0].UserID)

	c := post.Comment{ID: uuid.New(), UserID: a, Text: "nice", Name: "Bob", CreatedAt: time.Now().UTC()}
	got, err = s.postRepo.PushComment(ctx, p.ID, c)
	s.Require().NoError(err)
	s.Require().Len(got.Comments, 1)
	s.Equal("nice", got.Comments[0].Text)

	got, err = s.postRepo.PullComment(ctx, p.ID, c.ID)
	s.Require().NoError(err)
	s.Empty(got.Comments)

	_, err = s.postRepo.PushLike(ctx, uuid.New(), post.Like{ID: uuid.New(), UserID: a})
	s.ErrorIs(err, post.ErrPostNotFound)
}

func (s *MongoRepoIntegrationTestSuite) Test_Post_ListAndDelete() {
	ctx := context.Background()
	owner := uuid.New()
	base := time.Now().UTC().Add(time.Hour)
	older := s.newPost(owner, "older", base)
	newer := s.newPost(owner, "newer", base.Add(time.Minute))

	recent, err := s.postRepo.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(newer.ID, recent[0].ID)
	s.Equal(older.ID, recent[1].ID)

	s.Require().NoError(s.postRepo.Delete(ctx, older.ID))
	s.ErrorIs(s.postRepo.Delete(ctx, older.ID), post.ErrPostNotFound)

	s.Require().NoError(s.postRepo.DeleteByUserID(ctx, owner))
	_, err = s.postRepo.FindByID(ctx, newer.ID)
	s.ErrorIs(err, post.ErrPostNotFound)
}

func (s *MongoRepoIntegrationTestSuite) Test_TxRunner_StandaloneRunsDirectly() {
	tx := NewMongoTxRunner(context.Background(), s.client, logger.NewNop())
	called := false
	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	s.NoError(err)
	s.True(called)
}
