package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crusher-sewa/materials-api/internal/api"
	"github.com/crusher-sewa/materials-api/internal/core/service"
	"github.com/crusher-sewa/materials-api/internal/infrastructure/config"
	mongodb "github.com/crusher-sewa/materials-api/internal/infrastructure/db/mongo"
	redisdb "github.com/crusher-sewa/materials-api/internal/infrastructure/db/redis"
	"github.com/crusher-sewa/materials-api/internal/infrastructure/storage"
	"github.com/crusher-sewa/materials-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options depend on config, so bootstrap a default one for
		// the fatal path.
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	store, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to throttle store")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(store.DB)
	materialRepo := mongodb.NewMaterialRepository(store.DB)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := materialRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create material indexes")
	}

	if err := service.EnsureAdminSeed(ctx, userRepo, service.AdminSeed{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure admin seed")
	}

	images, err := storage.NewLocalStore(cfg.UploadDir, storage.MaterialImageBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise image store")
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	cleaner := storage.NewCleaner(images, 0, log)
	cleaner.Start(workerCtx)

	e := api.NewRouter(store, rdb, images, cleaner, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
