package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-booking/cache"
	"github.com/yeremiapane/restaurant-booking/config"
	"github.com/yeremiapane/restaurant-booking/database"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func main() {
	cfg := config.Load()
	utils.ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	utils.ConfigureJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.JWTSecret == "" {
		utils.ErrorLogger.Warn("JWT_SECRET is not set, using the development secret")
	}
	gin.SetMode(cfg.Server.Mode)

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	store := repository.NewStore(db)

	var (
		locker services.SlotLocker
		tokens router.TokenStore
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			utils.ErrorLogger.Printf("Redis at %s unreachable, continuing: %v", cfg.Redis.Addr, err)
		}
		locker = cache.NewRedisSlotLocker(rdb, cfg.Redis.SlotLockTTL)
		tokens = cache.NewRedisTokenBlacklist(rdb)
		utils.InfoLogger.Printf("Using redis at %s for slot locks and token revocation", cfg.Redis.Addr)
	} else {
		locker = cache.NewLocalSlotLocker()
		tokens = cache.NewMemoryTokenBlacklist()
	}

	var publisher events.Publisher = events.LogPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		utils.InfoLogger.Printf("Publishing domain events to kafka topic %s", cfg.Kafka.Topic)
	}
	defer publisher.Close()

	relay := services.NewOutboxRelay(store, publisher)
	relay.Interval = cfg.Outbox.Interval
	relay.BatchSize = cfg.Outbox.BatchSize
	relay.Start()
	defer relay.Stop()

	r := router.SetupRouter(router.Options{
		Store:             store,
		Locker:            locker,
		Tokens:            tokens,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		TrustedProxies:    cfg.Server.TrustedProxies,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		StrictAuthLimit:   cfg.RateLimit.StrictAuth,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Forced shutdown: %v", err)
	}
	utils.InfoLogger.Println("Server stopped")
}
