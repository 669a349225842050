package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/audit"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-frontdesk/internal/db"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/infra/feed"
	infraRepo "github.com/BruksfildServices01/clinic-frontdesk/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/middleware"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/routes"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/syncstore"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	loc := timezone.Location(cfg.ClinicTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	imageStorage := storage.NewS3Storage(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})

	var changes syncstore.Feed
	switch cfg.ChangeFeed {
	case config.FeedRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		changes = feed.NewRedisFeed(client, cfg.RedisChannel, cfg.FeedReconnectDelay, logger)
	default:
		changes = feed.NewPostgresFeed(cfg.DBUrl, cfg.PGNotifyChannel, cfg.FeedReconnectDelay, logger)
	}

	// ======================================================
	// REPLICA
	// ======================================================
	store := syncstore.New(appointmentRepo, logger)
	session, err := syncstore.Start(ctx, store, changes, logger)
	if err != nil {
		log.Fatalf("failed to subscribe to appointment changes: %v", err)
	}
	defer session.Close()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Location: loc,
		Logger:   logger,
		Repo:     appointmentRepo,
		Store:    store,
		Audit:    auditDispatcher,
		Storage:  imageStorage,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shutdown returns once in-flight handlers finish; the deferred closes
	// must not run before that.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server running", "addr", cfg.Addr(), "feed", cfg.ChangeFeed, "timezone", loc.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to start server: %v", err)
	}
	<-stopped
	logger.Info("server stopped")
}
