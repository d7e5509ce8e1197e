package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/adapters/event"
	httpAdapter "github.com/khoahotran/cvhub/adapters/http"
	"github.com/khoahotran/cvhub/adapters/persistence"
	"github.com/khoahotran/cvhub/internal/application/service"
	activityUC "github.com/khoahotran/cvhub/internal/application/usecase/activity"
	authUC "github.com/khoahotran/cvhub/internal/application/usecase/auth"
	cvUC "github.com/khoahotran/cvhub/internal/application/usecase/cv"
	recUC "github.com/khoahotran/cvhub/internal/application/usecase/recommendation"
	userUC "github.com/khoahotran/cvhub/internal/application/usecase/user"
	"github.com/khoahotran/cvhub/internal/config"
	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
	"github.com/khoahotran/cvhub/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start CV Hub API Server...", zap.String("env", cfg.App.Env))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "cvhub-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	if err := persistence.RunMigrations(cfg.DB.MigrationsPath, cfg.DB.DSN, appLogger); err != nil {
		appLogger.Fatal("cannot migrate database", err)
	}

	// Redis backs the login rate limiter; without it counters stay in memory.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, rate limiting in memory", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var publisher service.EventPublisher
	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Kafka disabled, domain events will not be published", zap.Error(err))
	} else {
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	cvRepo := persistence.NewPostgresCVRepo(dbPool, appLogger)
	recRepo := persistence.NewPostgresRecommendationRepo(dbPool, appLogger)
	activityRepo := persistence.NewPostgresActivityRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	userUseCase := userUC.NewUserUseCase(userRepo, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(registerUseCase, loginUseCase),
		User: httpAdapter.NewUserHandler(userUseCase),
		CV: httpAdapter.NewCVHandler(
			cvUC.NewCreateCVUseCase(cvRepo, publisher, appLogger),
			cvUC.NewListVisibleCVsUseCase(cvRepo),
			cvUC.NewListOwnerCVsUseCase(cvRepo),
			cvUC.NewGetCVUseCase(cvRepo),
			cvUC.NewSearchCVsUseCase(cvRepo),
			cvUC.NewUpdateCVUseCase(cvRepo, publisher, appLogger),
			cvUC.NewDeleteCVUseCase(cvRepo, publisher, appLogger),
		),
		Recommendation: httpAdapter.NewRecommendationHandler(
			recUC.NewCreateRecommendationUseCase(recRepo, publisher, appLogger),
			recUC.NewListRecommendationsUseCase(recRepo),
			recUC.NewDeleteRecommendationUseCase(recRepo, cvRepo, publisher, appLogger),
		),
		Feed:     httpAdapter.NewFeedHandler(cvUC.NewCVFeedUseCase(cvRepo, cfg.App.PublicURL, appLogger), appLogger),
		Activity: httpAdapter.NewActivityHandler(activityUC.NewListCVActivityUseCase(activityRepo, cvRepo)),
	}

	// Middleware
	middlewares := httpAdapter.Middlewares{
		Auth:       httpAdapter.AuthMiddleware(jwtSvc, userUseCase),
		LoginLimit: httpAdapter.NewRateLimiter(httpAdapter.LoginRateLimitConfig(), redisClient, appLogger).Middleware(),
	}

	router, err := httpAdapter.NewRouter(handlers, middlewares, appLogger)
	if err != nil {
		appLogger.Fatal("cannot build router", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
