package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/handlers"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/routes"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/review"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/user"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/cache"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/infrastructure/scheduler"
	"github.com/Emmanuel-Ibekwe/trackr-backend/pkg/config"
	"github.com/Emmanuel-Ibekwe/trackr-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Trackr API
// @version         1.0
// @description     A habit and task tracking API with daily entries and review statistics.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	// Database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis review cache; the API degrades to uncached reviews without it.
	var redisClient *cache.RedisClient
	redisClient, err = cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
	if err != nil {
		log.Warn("Redis unavailable, review caching disabled", zap.Error(err))
		redisClient = nil
	}

	// Repositories
	userRepo := user.NewRepository(db)
	taskRepo := task.NewRepository(db)
	entryRepo := entry.NewRepository(db)

	// Services. The entry service purges entries on behalf of task deletion
	// and the retention sweeper.
	var invalidator entry.ReviewCacheInvalidator
	var reviewCache review.Cache
	if redisClient != nil {
		invalidator = redisClient
		reviewCache = redisClient
	}
	entryService := entry.NewService(entryRepo, taskRepo, invalidator, log.Logger)
	taskService := task.NewService(taskRepo, userRepo, entryService, cfg.Retention.TaskHorizonMonths, log.Logger)
	reviewService := review.NewService(entryRepo, taskRepo, reviewCache, log.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg.Auth)
	taskHandler := handlers.NewTaskHandler(taskService)
	entryHandler := handlers.NewEntryHandler(entryService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	routes.SetupHealthRoutes(router, db, redisClient)
	routes.NewAuthRoutes(authHandler).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewEntryRoutes(entryHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewReviewRoutes(reviewHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Retention sweeper
	sweeper := scheduler.NewScheduler(taskService, cfg.Retention.SweepSchedule, log.Logger)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start retention scheduler", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	log.Info("Server stopped")
}
