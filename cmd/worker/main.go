package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/infrastructure/config"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/infrastructure/persistence/pool"
	"github.com/lingopass/backend/internal/infrastructure/persistence/repository"
	"github.com/lingopass/backend/internal/worker/tasks"
)

// The worker drains the purchase reconciliation queue: verified checkout
// completions whose storage write failed while the provider was being
// acknowledged. It needs Redis, unlike the API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.RedisEnabled() {
		log.Fatal("REDIS_URL is required for the worker")
	}

	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	ctx := context.Background()
	dbPool, err := pool.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close(dbPool)

	if err := pool.Ping(ctx, dbPool); err != nil {
		logging.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(dbPool)
	purchaseRepo := repository.NewPurchaseRepository(dbPool)
	applyCmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, logging.WithComponent("reconciler"))

	redisOpt, err := asynq.ParseRedisURI(cfg.Redis.URL)
	if err != nil {
		logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
	})

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeReconcilePurchase, tasks.NewReconcileJobHandler(applyCmd, logging.WithComponent("reconcile_worker")))

	logging.Logger.Info("Starting reconcile worker")
	if err := srv.Run(mux); err != nil {
		logging.Logger.Fatal("Worker stopped", zap.Error(err))
	}
}
