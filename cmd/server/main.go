package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/config"
	bookingEvents "github.com/shareit-platform/service-booking/internal/events"
	"github.com/shareit-platform/service-booking/internal/handler"
	"github.com/shareit-platform/service-booking/internal/metrics"
	"github.com/shareit-platform/service-booking/internal/platform/auth"
	"github.com/shareit-platform/service-booking/internal/platform/clock"
	"github.com/shareit-platform/service-booking/internal/platform/database"
	"github.com/shareit-platform/service-booking/internal/platform/health"
	"github.com/shareit-platform/service-booking/internal/platform/kafka"
	"github.com/shareit-platform/service-booking/internal/platform/logger"
	"github.com/shareit-platform/service-booking/internal/platform/middleware"
	"github.com/shareit-platform/service-booking/internal/ratelimit"
	"github.com/shareit-platform/service-booking/internal/repository"
)

const serviceName = "service-booking"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.ItemRequestModel{},
			&repository.ItemModel{},
			&repository.BookingModel{},
			&repository.CommentModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTokenTTL)

	// Initialize event publisher
	var publisher application.EventPublisher = bookingEvents.NewNoopPublisher(log)
	if cfg.KafkaConfig.Enabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	requestRepo := repository.NewGormItemRequestRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Initialize application services
	clk := clock.System{}
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, publisher, clk, log)
	itemService := application.NewItemService(itemRepo, requestRepo, bookingRepo, commentRepo, userRepo, clk, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, clk, log)
	userService := application.NewUserService(userRepo, log)

	// Initialize and start user event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "-users"
		userConsumer := bookingEvents.NewUserEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			userService,
			log,
		)
		defer func() { _ = userConsumer.Close() }()

		go func() {
			log.Info("starting user event consumer", zap.String("group_id", groupID))
			if err := userConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("user event consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize rate limiter
	var limiter ratelimit.Limiter
	if cfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer func() { _ = redisClient.Close() }()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		log.Info("rate limiting via redis", zap.String("addr", cfg.RedisConfig.Addr))
	} else {
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.RequestsPerSecond(), cfg.RateLimit.Requests)
	}

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	itemHandler := handler.NewItemHandler(itemService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	metrics.Register()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(metrics.GinMiddleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	authMW := middleware.AuthMiddleware(jwtManager, middleware.WithTrustedUserHeader(cfg.JWTConfig.TrustUserHeader))
	limitMW := ratelimit.Middleware(limiter, log)
	bookingHandler.RegisterRoutes(&router.RouterGroup, authMW, limitMW)
	itemHandler.RegisterRoutes(&router.RouterGroup, authMW, limitMW)
	requestHandler.RegisterRoutes(&router.RouterGroup, authMW, limitMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
