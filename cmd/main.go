package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/handler"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/Payphone-Digital/auth-service/internal/repository"
	"github.com/Payphone-Digital/auth-service/internal/router"
	"github.com/Payphone-Digital/auth-service/internal/service"
	"github.com/Payphone-Digital/auth-service/pkg/circuit"
	"github.com/Payphone-Digital/auth-service/pkg/database"
	"github.com/Payphone-Digital/auth-service/pkg/health"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Refuse to start without a usable signing secret and TTLs
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		Environment:     config.App.Environment,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrated successfully")

	hasher := service.NewPasswordHasher(config.Security.BcryptCost, config.Security.HashConcurrency)

	if config.Seed.DemoUsers {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		created, err := database.SeedDemoUsers(seedCtx, db, hasher.Hash)
		cancel()
		if err != nil {
			// seeding is a convenience, the service still works without it
			log.Error("Failed to seed demo users", zap.Error(err))
		} else {
			log.Info("Demo users seeded", zap.Int("created", created))
		}
	}

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, log)
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	credentialStore := repository.NewCredentialStore(userRepo, tokenRepo)

	// Services
	tokenIssuer, err := service.NewTokenIssuer(config.JWT.Secret, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	if err != nil {
		log.Fatal("Failed to create token issuer", zap.Error(err))
	}
	cacheService := service.NewCacheService(redisClient, config.Redis.UserCacheTTL).
		WithBreaker(circuit.NewBreaker("user-cache", circuit.DefaultConfig(), log))
	authService := service.NewAuthService(credentialStore, hasher, tokenIssuer)
	userService := service.NewUserService(userRepo, cacheService)

	// Background workers
	monitor := health.NewMonitor(config.App.HealthCheckInterval, log)
	monitor.Register("database", &health.PingChecker{
		Target: health.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
	}, true)
	monitor.Register("redis", &health.PingChecker{
		Target:  redisClient,
		Enabled: redisClient.IsEnabled,
	}, false)
	monitor.Start()
	defer monitor.Stop()

	cleaner := service.NewTokenCleaner(tokenRepo, config.JWT.CleanupInterval, log)
	cleaner.Start(context.Background())
	defer cleaner.Stop()

	// Handlers
	development := config.IsDevelopment()
	authHandler := handler.NewAuthHandler(authService, development)
	userHandler := handler.NewUserHandler(userService, development)
	healthHandler := handler.NewHealthHandler(monitor)

	r := router.NewRouter(
		authHandler,
		userHandler,
		healthHandler,

		middleware.NewValidationMiddleware(),
		middleware.NewJWTMiddleware(authService),
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
