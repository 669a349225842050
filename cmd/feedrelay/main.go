package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/config"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/infra/feed"
)

// feedrelay follows the Postgres change channel and republishes it on
// redis for API processes running with CHANGE_FEED=redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis unreachable: %v", err)
	}

	src, err := feed.NewPostgresFeed(cfg.DBUrl, cfg.PGNotifyChannel, cfg.FeedReconnectDelay, logger).Subscribe(ctx)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.PGNotifyChannel, err)
	}

	logger.Info("relaying", "from", cfg.PGNotifyChannel, "to", cfg.RedisChannel)
	if err := feed.NewRedisRelay(client, cfg.RedisChannel, logger).Run(ctx, src); err != nil && ctx.Err() == nil {
		log.Fatalf("relay stopped: %v", err)
	}
}
