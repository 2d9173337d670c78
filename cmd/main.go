package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/container"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/search"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/store"
	"github.com/oksasatya/go-noticeboard/internal/router"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
	"github.com/oksasatya/go-noticeboard/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	stores, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer stores.Close()

	images, closeImages, err := store.OpenImages(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init upload storage: %v", err)
	}
	defer closeImages()

	ct := &container.Container{
		Config:  cfg,
		Logger:  logger,
		Users:   stores.Users,
		Notices: stores.Notices,
		Images:  images,
	}

	// Redis backs the rate limiter; without it limits are kept in memory
	if cfg.RateLimitEnabled && cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable, using in-memory rate limits")
			_ = rdb.Close()
		} else {
			defer func() { _ = rdb.Close() }()
			ct.Redis = rdb
		}
	}

	if cfg.EventsEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNoticeQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, notice events disabled")
		} else {
			defer pub.Close()
			ct.Publisher = pub
		}
	}

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, search disabled")
		} else {
			ct.Search = search.NewNoticeIndex(es, cfg.ESNoticesIndex, logger)
		}
	}

	r := router.NewEngine(ct)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (store=%s uploads=%s)", cfg.Port, stores.Driver, cfg.UploadBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
