package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/commerce-service/internal/api/http"
	"github.com/spec-kit/commerce-service/internal/api/http/handlers"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/config"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/observability"
	"github.com/spec-kit/commerce-service/internal/payment"
	"github.com/spec-kit/commerce-service/internal/persistence"
	"github.com/spec-kit/commerce-service/internal/ratelimit"
	"github.com/spec-kit/commerce-service/internal/repository"
	"github.com/spec-kit/commerce-service/internal/service"
	"github.com/spec-kit/commerce-service/internal/storage"
	"github.com/spec-kit/commerce-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	fileRepo := repository.NewFileRepository(pool)

	objectStore, err := storage.NewDiskStore(cfg.Storage.RootDir)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	productService := service.NewProductService(productRepo, dispatcher)
	paymentService := service.NewPaymentService(
		paymentRepo,
		payment.NewHTTPProvider(cfg.Payment.ProviderBaseURL, cfg.Payment.ProviderAPIKey),
		payment.NewWebhookVerifier(cfg.Payment.ProviderSecret),
		dispatcher,
	)
	storageService := service.NewStorageService(objectStore, fileRepo)
	analyticsService := service.NewAnalyticsService(paymentRepo, productRepo)
	worker.StartAnalyticsWorker(dispatcher, analyticsService)

	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimit.UseRedis {
		limitStore = ratelimit.NewRedisStore(redis.Client)
	}
	limiter := ratelimit.NewLimiter(limitStore, cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		CORS:    cfg.CORS,
		Timeout: cfg.App.RequestTimeout(),
		Limiter: limiter,
	})

	if err := httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Home:           handlers.NewHomeHandler(),
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Products:       handlers.NewProductsHandler(productService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Cloud:          handlers.NewCloudHandler(storageService),
		Admin:          handlers.NewAdminHandler(userRepo),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		AuthMiddleware: authMiddleware,
	}); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()), zap.String("port", cfg.App.Port))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
