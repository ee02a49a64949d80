package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freelancehub/marketplace-api/internal/api"
	"github.com/freelancehub/marketplace-api/internal/core/service"
	"github.com/freelancehub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/freelancehub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/freelancehub/marketplace-api/internal/infrastructure/db/redis"
	"github.com/freelancehub/marketplace-api/internal/infrastructure/queue"
	"github.com/freelancehub/marketplace-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Key material is loaded exactly once; a malformed key pair means the
	// process never serves traffic.
	privateKeyPEM, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.JWT.PrivateKeyPath).Msg("failed to read private key")
	}
	publicKeyPEM, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.JWT.PublicKeyPath).Msg("failed to read public key")
	}
	tokens, err := service.NewTokenService(privateKeyPEM, publicKeyPEM, cfg.JWT.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load signing keys")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":    userRepo.EnsureIndexes,
		"projects": projectRepo.EnsureIndexes,
		"audit":    auditRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("failed to create indexes")
		}
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		Tokens:     tokens,
		Audit:      dispatcher,
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
