package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/akostin-dev/vidhost/internal/api/handler"
	"github.com/akostin-dev/vidhost/internal/api/middleware"
	"github.com/akostin-dev/vidhost/internal/config"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
	"github.com/akostin-dev/vidhost/internal/infrastructure/cache"
	"github.com/akostin-dev/vidhost/internal/infrastructure/postgres"
	"github.com/akostin-dev/vidhost/internal/infrastructure/queue"
	"github.com/akostin-dev/vidhost/internal/infrastructure/storage"
	"github.com/akostin-dev/vidhost/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	objectStorage, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to minio: %w", err)
	}

	// Cache and event stream are optional: the service degrades to uncached
	// reads and skipped notifications rather than refusing to start.
	videoCache := connectCache(ctx, cfg.Redis, logger)
	events := connectQueue(ctx, cfg.RabbitMQ, logger)
	if events != nil {
		defer events.Close()
	}

	pool := db.Pool()
	uowf := postgres.NewUnitOfWorkFactory(pool)

	videoRepo := repository.VideoRepository(postgres.NewVideoRepository(pool))
	if videoCache != nil {
		videoRepo = usecase.NewCachedVideoRepository(videoRepo, videoCache, cfg.Engagement.CacheTTL)
	}
	reactionRepo := postgres.NewReactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	svc := usecase.NewVideoService(
		uowf,
		videoRepo,
		reactionRepo,
		userRepo,
		objectStorage,
		events,
		videoCache,
		logger,
		usecase.VideoServiceConfig{
			UploadURLExpiry:   cfg.Engagement.UploadURLExpiry,
			PlaybackURLExpiry: cfg.Engagement.PlaybackURLExpiry,
		},
	)

	r := setupRouter(logger, db, svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func connectCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) cache.VideoCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, running without video cache",
			slog.String("addr", cfg.Addr()),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil
	}
	return cache.NewRedisVideoCache(client)
}

func connectQueue(ctx context.Context, cfg config.RabbitMQConfig, logger *slog.Logger) repository.EventPublisher {
	client, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.URL()))
	if err != nil {
		logger.Warn("rabbitmq unreachable, engagement events disabled",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return client
}

func setupRouter(logger *slog.Logger, db *postgres.Client, svc usecase.VideoService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Identity)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready(db))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", handler.NewVideoHandler(svc).Routes)

	return r
}
