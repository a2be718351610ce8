package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	githubAdapter "github.com/JakeG-9191/Denver-Dev-Connect/adapters/github"
	httpAdapter "github.com/JakeG-9191/Denver-Dev-Connect/adapters/http"
	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/media_storage"
	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/persistence"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	accountUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/account"
	authUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/auth"
	postUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/post"
	profileUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()
	log.Info("Starting DevConnector API Server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, log, "devconnect-api")
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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	if err := persistence.EnsureIndexes(startupCtx, mongoDB); err != nil {
		log.Fatal("cannot create Mongo indexes", err)
	}
	txRunner := persistence.NewMongoTxRunner(startupCtx, mongoClient, log)
	cancelStartup()

	var repoCache service.ResponseCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, log)
		if err != nil {
			log.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		repoCache = persistence.NewRedisResponseCache(redisClient, "github:repos:")
	} else {
		log.Warn("Redis not configured, github responses are not cached")
	}

	var events service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, log)
		if err != nil {
			log.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	} else {
		log.Warn("Kafka not configured, domain events are dropped")
		events = event.NewNopPublisher(log)
	}

	uploader, err := media_storage.NewUploader(cfg, log)
	if err != nil {
		log.Fatal("cannot init uploader", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, log)
	profileRepo := persistence.NewMongoProfileRepo(mongoDB, log)
	postRepo := persistence.NewMongoPostRepo(mongoDB, log)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := githubAdapter.NewClient(cfg, repoCache, log)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, log)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, log)
	getMeUseCase := authUC.NewGetMeUseCase(userRepo)
	uploadAvatarUseCase := accountUC.NewUploadAvatarUseCase(userRepo, uploader, events, log)
	deleteAccountUseCase := accountUC.NewDeleteAccountUseCase(postRepo, profileRepo, userRepo, txRunner, events, log)

	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, log)
	githubReposUseCase := profileUC.NewGithubReposUseCase(githubClient)

	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, userRepo, events, log)
	getPostUseCase := postUC.NewGetPostUseCase(postRepo)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, events, log)
	likePostUseCase := postUC.NewLikePostUseCase(postRepo)
	commentPostUseCase := postUC.NewCommentPostUseCase(postRepo, userRepo)
	rssUseCase := postUC.NewRSSUseCase(postRepo, cfg.App.PublicURL, log)

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:    httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, getMeUseCase, uploadAvatarUseCase),
		Profile: httpAdapter.NewProfileHandler(profileUseCase, githubReposUseCase, deleteAccountUseCase, log),
		Post: httpAdapter.NewPostHandler(
			createPostUseCase,
			getPostUseCase,
			listPostsUseCase,
			deletePostUseCase,
			likePostUseCase,
			commentPostUseCase,
		),
		RSS: httpAdapter.NewRSSHandler(rssUseCase, log),
	}, jwtSvc, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", err)
	}
}
