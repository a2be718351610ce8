package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/media_storage"
	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/persistence"
	accountUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/account"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/tracing"
)

var errNoBrokers = errors.New("kafka brokers not configured")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()
	log.Info("Starting DevConnector Worker...", zap.Strings("brokers", cfg.Kafka.Brokers))

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("cannot start worker", errNoBrokers)
	}

	tp, err := tracing.NewTracerProvider(cfg, log, "devconnect-worker")
	if err != nil {
		log.Fatal("cannot init tracer", err)
	}
	defer tracing.Shutdown(tp, log)

	// Storage
	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	mongoClient, err := persistence.NewMongoClient(cfg, log)
	if err != nil {
		log.Fatal("cannot connect MongoDB", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	mongoDB := mongoClient.Database(cfg.Mongo.Database)

	uploader, err := media_storage.NewUploader(cfg, log)
	if err != nil {
		log.Fatal("cannot init uploader", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, log)
	profileRepo := persistence.NewMongoProfileRepo(mongoDB, log)
	postRepo := persistence.NewMongoPostRepo(mongoDB, log)

	processAccountEventUC := accountUC.NewProcessAccountEventUseCase(postRepo, profileRepo, userRepo, uploader, log)

	consumer := event.NewAccountEventConsumer(cfg, log)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx, processAccountEventUC.Execute); err != nil {
		log.Error("Worker stopped", err)
		return
	}
	log.Info("Worker stopped")
}
