package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "illara-backend/docs"
	"illara-backend/internal/common/cache"
	"illara-backend/internal/common/config"
	"illara-backend/internal/common/logger"
	"illara-backend/internal/common/middleware"
	rewardHTTP "illara-backend/internal/features/reward/delivery/http"
	rewardRepo "illara-backend/internal/features/reward/repository/postgres"
	rewardService "illara-backend/internal/features/reward/service"
	scoreHTTP "illara-backend/internal/features/score/delivery/http"
	scoreRepo "illara-backend/internal/features/score/repository/postgres"
	scoreService "illara-backend/internal/features/score/service"
	userHTTP "illara-backend/internal/features/user/delivery/http"
	userRepo "illara-backend/internal/features/user/repository/postgres"
	userService "illara-backend/internal/features/user/service"
	walletHTTP "illara-backend/internal/features/wallet/delivery/http"
	walletRepo "illara-backend/internal/features/wallet/repository/postgres"
	walletService "illara-backend/internal/features/wallet/service"
	"illara-backend/internal/platform/postgres"
	"illara-backend/internal/platform/redis"
)

// @title           Illara Camp API
// @version         1.0
// @description     API server for the Illara Camp Telegram Mini App: earn ILL in mini-games, spend it in the store, redeem reward codes. All endpoints require init_data authentication.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

// @tag.name auth
// @tag.description Telegram authentication and account upsert

// @tag.name users
// @tag.description Account management

// @tag.name wallet
// @tag.description ILL balance and ledger

// @tag.name rewards
// @tag.description Store catalog and reward code redemption

// @tag.name scores
// @tag.description Mini-game score log

func main() {
	// Инициализируем конфигурацию
	cfg := config.Load()

	// Инициализируем логгер
	logger.Init("illara-backend", cfg.Debug)

	logger.Info().
		Str("version", "1.0.0").
		Bool("debug", cfg.Debug).
		Msg("Starting Illara Camp Backend")

	// Инициализируем базу данных
	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	// Применяем схему
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgresClient.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	cancelMigrate()

	// Инициализируем Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Инициализируем кэш
	cacheService := cache.NewCacheService(redisClient)

	// Инициализируем репозитории
	db := postgresClient.GetDB()
	userRepository := userRepo.NewPostgresRepository(db)
	walletRepository := walletRepo.NewPostgresRepository(db)
	rewardRepository := rewardRepo.NewPostgresRepository(db)
	scoreRepository := scoreRepo.NewPostgresRepository(db)

	// Инициализируем сервисы
	walletSvc := walletService.NewWalletService(walletRepository, postgresClient, cacheService, cfg.Redis.WalletTTL)
	userSvc := userService.NewUserService(userRepository, walletRepository, postgresClient)
	rewardSvc := rewardService.NewRewardService(rewardRepository, walletSvc, postgresClient)
	scoreSvc := scoreService.NewScoreService(scoreRepository)

	// Настраиваем Gin
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Добавляем middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Настраиваем CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data"}
	router.Use(cors.New(corsConfig))

	// Настраиваем роуты
	v1 := router.Group("/api/v1")
	v1.Use(middleware.TelegramInitData(cfg.Telegram.BotToken, cfg.Telegram.Debug))

	userHTTP.NewUserHandler(userSvc).RegisterRoutes(v1)
	walletHTTP.NewWalletHandler(walletSvc, userSvc).RegisterRoutes(v1)
	rewardHTTP.NewRewardHandler(rewardSvc, userSvc).RegisterRoutes(v1)
	scoreHTTP.NewScoreHandler(scoreSvc, userSvc).RegisterRoutes(v1)

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "illara-backend",
		})
	})

	// Liveness probe
	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Readiness probe
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Проверка Postgres
		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "postgres unavailable",
			})
			return
		}

		// Проверка Redis
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "redis unavailable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "illara-backend",
		})
	})

	// Создаем HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ждем сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
