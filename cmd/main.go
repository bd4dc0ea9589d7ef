package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/config"
	"github.com/fathima-sithara/messenger-backend/internal/auth"
	"github.com/fathima-sithara/messenger-backend/internal/cache"
	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/handlers"
	"github.com/fathima-sithara/messenger-backend/internal/kafka"
	"github.com/fathima-sithara/messenger-backend/internal/logger"
	"github.com/fathima-sithara/messenger-backend/internal/notify"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/routes"
	"github.com/fathima-sithara/messenger-backend/internal/service"
	"github.com/fathima-sithara/messenger-backend/internal/storage"
	"github.com/fathima-sithara/messenger-backend/internal/ws"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	log      *zap.SugaredLogger
	repo     *repository.MongoRepository
	redis    *cache.Client
	producer *kafka.Producer
	consumer *kafka.Consumer
	cancel   context.CancelFunc
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.AppEnv != "production"})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	srv, err := newServer(cfg, zlog)
	if err != nil {
		zlog.Fatalw("server init", "err", err)
	}

	go func() {
		zlog.Infow("listening", "port", cfg.AppPort)
		if err := srv.app.Listen(":" + cfg.AppPort); err != nil {
			zlog.Fatalw("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	srv.Shutdown()
}

func newServer(cfg *config.Config, zlog *zap.SugaredLogger) (*Server, error) {
	repo, err := repository.NewMongoRepository(cfg)
	if err != nil {
		return nil, err
	}
	redisClient, err := cache.NewRedis(cfg)
	if err != nil {
		return nil, err
	}

	producer := kafka.NewProducer(cfg)
	consumer := kafka.NewConsumer(cfg, zlog)

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	avatarStore, err := storage.NewS3Store(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.S3PublicRead)
	if err != nil {
		return nil, err
	}

	scheduler := notify.NewLocalScheduler(func(id string, n notify.Notification) {
		zlog.Infow("notification due", "id", id, "chat", n.Data["chatId"], "message", n.Data["messageId"])
	}, zlog)

	chatSvc := service.NewChatService(repo, repo, producer, zlog)
	groupSvc := service.NewGroupService(repo, repo, producer, zlog)
	contactSvc := service.NewContactService(repo, repo)
	authSvc := service.NewAuthService(repo, redisClient, tokens, cfg.SyntheticEmailDomain, zlog)
	profileSvc := service.NewProfileService(repo, avatarStore)
	reminderSvc := service.NewReminderService(repo, repo, repo, scheduler, zlog)

	hub := ws.NewHub(zlog)
	live := ws.NewLive(hub, repo, repo, zlog)
	wsServer := ws.NewServer(hub, live, tokens, zlog)

	ctx, cancel := context.WithCancel(context.Background())
	eventCh := make(chan events.Event, 256)
	go consumer.Run(ctx, eventCh)
	go live.Run(ctx, eventCh)

	app := fiber.New(fiber.Config{
		AppName:               "messenger-backend",
		DisableStartupMessage: cfg.AppEnv == "production",
	})

	routes.Register(app, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc, zlog),
		Chats:     handlers.NewChatHandler(chatSvc, repo, zlog),
		Groups:    handlers.NewGroupHandler(groupSvc),
		Contacts:  handlers.NewContactHandler(contactSvc, repo),
		Profiles:  handlers.NewProfileHandler(profileSvc),
		Reminders: handlers.NewReminderHandler(reminderSvc),
		Links:     handlers.NewLinkHandler(),
		WS:        wsServer,
		Tokens:    tokens,
		Log:       zlog,
	})

	return &Server{
		app:      app,
		cfg:      cfg,
		log:      zlog,
		repo:     repo,
		redis:    redisClient,
		producer: producer,
		consumer: consumer,
		cancel:   cancel,
	}, nil
}

func (s *Server) Shutdown() {
	s.log.Info("shutting down")
	s.cancel()

	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		s.log.Warnw("http shutdown", "err", err)
	}
	if err := s.consumer.Close(); err != nil {
		s.log.Warnw("kafka consumer close", "err", err)
	}
	if err := s.producer.Close(); err != nil {
		s.log.Warnw("kafka producer close", "err", err)
	}
	if err := s.redis.Close(); err != nil {
		s.log.Warnw("redis close", "err", err)
	}
	if err := s.repo.Disconnect(ctx); err != nil {
		s.log.Warnw("mongo disconnect", "err", err)
	}
	s.log.Info("stopped")
}
