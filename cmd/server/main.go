package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sahabulislamsifat/PlantStore/internal/auth"
	"github.com/sahabulislamsifat/PlantStore/internal/cache"
	"github.com/sahabulislamsifat/PlantStore/internal/config"
	"github.com/sahabulislamsifat/PlantStore/internal/events"
	storehttp "github.com/sahabulislamsifat/PlantStore/internal/http"
	"github.com/sahabulislamsifat/PlantStore/internal/notify"
	"github.com/sahabulislamsifat/PlantStore/internal/repository"
	"github.com/sahabulislamsifat/PlantStore/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if !cfg.IsProduction() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()

	// MongoDB
	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName, repository.MongoOptions{
		ConnectTimeout: time.Duration(cfg.MongoConnectTimeoutSeconds) * time.Second,
		MaxPoolSize:    cfg.MongoMaxPoolSize,
		MinPoolSize:    cfg.MongoMinPoolSize,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(ctx)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	logger.Info().Str("uri", cfg.MongoURI).Msg("connected to MongoDB")

	plantRepo := repository.NewMongoPlantRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	// Redis catalog cache (optional)
	var catalogCache cache.CatalogCache = cache.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		catalogCache = cache.NewRedisCache(redisClient)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
	}

	// Kafka order events (optional)
	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(brokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info().Strs("brokers", brokers).Msg("order events enabled")
	}

	// SMTP notifier (optional)
	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.SMTPHost != "" {
		mailer, err := notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build mailer")
		}
		notifier = notify.NewBreakerNotifier(mailer)
		logger.Info().Str("host", cfg.SMTPHost).Msg("order mail enabled")
	}

	tokenMaker, err := auth.NewTokenMaker(cfg.TokenSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build token maker")
	}

	catalogService := service.NewCatalogService(plantRepo, catalogCache, logger)
	orderService := service.NewOrderService(plantRepo, orderRepo, catalogCache, notifier, publisher, logger)
	userService := service.NewUserService(userRepo)

	requestTimeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	router := storehttp.NewRouter(storehttp.RouterConfig{
		Catalog:        catalogService,
		Orders:         orderService,
		Users:          userService,
		Tokens:         tokenMaker,
		Logger:         logger,
		RequestTimeout: requestTimeout,
		CookieTTL:      time.Duration(cfg.TokenTTLHours) * time.Hour,
		SecureCookies:  cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("PlantStore server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
