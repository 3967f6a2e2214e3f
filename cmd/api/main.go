package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/application/middleware"
	"github.com/lingopass/backend/internal/application/query"
	"github.com/lingopass/backend/internal/domain/service"
	"github.com/lingopass/backend/internal/infrastructure/cache"
	"github.com/lingopass/backend/internal/infrastructure/config"
	"github.com/lingopass/backend/internal/infrastructure/external/deepl"
	"github.com/lingopass/backend/internal/infrastructure/external/libretranslate"
	"github.com/lingopass/backend/internal/infrastructure/external/stripe"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/infrastructure/persistence/pool"
	"github.com/lingopass/backend/internal/infrastructure/persistence/repository"
	app_handler "github.com/lingopass/backend/internal/interfaces/http/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting Lingopass API server",
		zap.Int("port", cfg.Server.Port),
		zap.Bool("payment_enabled", cfg.PaymentEnabled()),
		zap.Bool("redis_enabled", cfg.RedisEnabled()),
	)

	ctx := context.Background()
	dbPool, err := pool.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close(dbPool)

	if err := pool.Ping(ctx, dbPool); err != nil {
		logging.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Redis is optional: without it the translation cache, rate limiter and
	// reconcile queue are disabled and everything degrades gracefully.
	var redisClient *redis.Client
	var asynqClient *asynq.Client
	if cfg.RedisEnabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
		}
		opts.PoolSize = cfg.Redis.PoolSize
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logging.Logger.Fatal("Failed to ping Redis", zap.Error(err))
		}

		asynqClient = asynq.NewClientFromRedisClient(redisClient)
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	purchaseRepo := repository.NewPurchaseRepository(dbPool)

	// Translation providers, in priority order; each is configured only
	// when its credentials are present.
	var providers []service.TranslationProvider
	if cfg.Translation.DeepLAPIKey != "" {
		providers = append(providers, deepl.NewClient(
			cfg.Translation.DeepLAPIKey,
			cfg.Translation.DeepLAPIURL,
			cfg.Translation.Timeout,
			logging.WithComponent("deepl"),
		))
	}
	if cfg.Translation.LibreTranslateURL != "" {
		providers = append(providers, libretranslate.NewClient(
			cfg.Translation.LibreTranslateURL,
			cfg.Translation.LibreTranslateAPIKey,
			cfg.Translation.Timeout,
			logging.WithComponent("libretranslate"),
		))
	}

	var translationCache *cache.TranslationCache
	if redisClient != nil {
		translationCache = cache.NewTranslationCache(redisClient, cache.DefaultTTL, logging.WithComponent("translation_cache"))
	}

	// Services
	translationSvc := service.NewTranslationService(providers, translationCache, logging.WithComponent("translation"))
	certificateSvc := service.NewCertificateService()

	// Payment provider client; nil disables checkout with a typed error.
	var stripeClient *stripe.Client
	if cfg.PaymentEnabled() {
		stripeClient = stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIURL, cfg.Stripe.Timeout, logging.WithComponent("stripe"))
	}

	// Commands and queries
	registerCmd := command.NewRegisterCommand(userRepo)
	checkoutCmd := command.NewCreateCheckoutCommand(stripeClient, cfg.Public.BaseURL)
	applyCmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, logging.WithComponent("reconciler"))
	profileQuery := query.NewGetProfileQuery(userRepo)

	// Middleware
	rateLimiter := middleware.NewRateLimiter(redisClient, true, logging.WithComponent("rate_limiter"))

	// Handlers
	translateHandler := app_handler.NewTranslateHandler(translationSvc)
	paymentHandler := app_handler.NewPaymentHandler(checkoutCmd)
	certificateHandler := app_handler.NewCertificateHandler(certificateSvc)
	userHandler := app_handler.NewUserHandler(registerCmd, profileQuery)

	var enqueuer app_handler.TaskEnqueuer
	if asynqClient != nil {
		enqueuer = asynqClient
	}
	webhookHandler := app_handler.NewWebhookHandler(cfg.Stripe.WebhookSecret, applyCmd, enqueuer)

	if cfg.Sentry.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logging.RequestMiddleware(logging.Logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Webhook route (no auth, verified by signature)
	router.POST("/webhook", webhookHandler.HandleStripe)

	api := router.Group("/api")
	{
		api.POST("/translate",
			rateLimiter.Middleware(middleware.ByIP, middleware.TranslateConfig),
			translateHandler.Translate,
		)
		api.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
		api.GET("/certificate/:name/:level", certificateHandler.Download)
		api.POST("/register", userHandler.Register)
		api.GET("/me/:id", userHandler.Me)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if asynqClient != nil {
		_ = asynqClient.Close()
	}

	logging.Logger.Info("Server exited")
}
