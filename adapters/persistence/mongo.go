package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const (
	profilesCollection = "profiles"
	postsCollection    = "posts"
)

func NewMongoClient(cfg config.Config, log logger.Logger) (*mongo.Client, error) {
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("config mongo uri not found")
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	log.Info("Connect MongoDB successfully.")
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique user_id index
// is what keeps one profile per user.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(profilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create profiles index failed: %w", err)
	}

	_, err = db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create posts indexes failed: %w", err)
	}
	return nil
}

type mongoTxRunner struct {
	client       *mongo.Client
	transactions bool
	logger       logger.Logger
}

// NewMongoTxRunner asks the server whether it is part of a replica set or a sharded
// cluster. Standalone servers reject transactions, so there the callback runs directly.
func NewMongoTxRunner(ctx context.Context, client *mongo.Client, log logger.Logger) service.TxRunner {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
	if err != nil {
		log.Warn("Mongo hello failed, transactions disabled")
	}
	supported := err == nil && (hello.SetName != "" || hello.Msg == "isdbgrid")
	if !supported {
		log.Info("Mongo deployment is standalone, multi-document transactions disabled")
	}
	return &mongoTxRunner{client: client, transactions: supported, logger: log}
}

func (r *mongoTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactions {
		return fn(ctx)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session failed: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (any, error) {
		return nil, fn(sc)
	})
	return err
}
