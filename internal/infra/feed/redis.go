package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
)

// ======================================================
// SUBSCRIBER
// ======================================================

// RedisFeed consumes notifications republished by RedisRelay.
type RedisFeed struct {
	client         *redis.Client
	channel        string
	reconnectDelay time.Duration
	logger         *slog.Logger
}

func NewRedisFeed(client *redis.Client, channel string, reconnectDelay time.Duration, logger *slog.Logger) *RedisFeed {
	return &RedisFeed{
		client:         client,
		channel:        channel,
		reconnectDelay: reconnectDelay,
		logger:         logger.With("feed", "redis", "channel", channel),
	}
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan events.Notification, error) {
	ps := f.client.Subscribe(ctx, f.channel, f.channel+ResyncSuffix)

	// one confirmation per channel
	for i := 0; i < 2; i++ {
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			return nil, err
		}
	}

	out := make(chan events.Notification, bufferSize)
	go f.loop(ctx, ps, out)
	return out, nil
}

func (f *RedisFeed) loop(ctx context.Context, ps *redis.PubSub, out chan<- events.Notification) {
	defer close(out)
	defer ps.Close()

	var t translator
	t.channel = f.channel

	for {
		msg, err := ps.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// the next Receive reconnects and resubscribes
			t.lost = true
			f.logger.Warn("subscription interrupted", "error", err)
			if !sleep(ctx, f.reconnectDelay) {
				return
			}
			continue
		}

		if n, ok := t.translate(msg); ok {
			if n.Reconnected {
				f.logger.Info("resync requested")
			}
			if !send(ctx, out, n) {
				return
			}
		}
	}
}

// translator turns pub/sub traffic into notifications. A subscription
// confirmation after a lost connection means messages may have been
// published while nobody listened.
type translator struct {
	channel string
	lost    bool
}

func (t *translator) translate(msg interface{}) (events.Notification, bool) {
	switch m := msg.(type) {
	case *redis.Message:
		if m.Channel == t.channel+ResyncSuffix {
			return events.Notification{Reconnected: true}, true
		}
		return events.Notification{Payload: []byte(m.Payload)}, true

	case *redis.Subscription:
		if t.lost && m.Kind == "subscribe" && m.Channel == t.channel {
			t.lost = false
			return events.Notification{Reconnected: true}, true
		}
	}
	return events.Notification{}, false
}

// ======================================================
// RELAY
// ======================================================

// Publisher is the part of *redis.Client the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisRelay republishes a notification stream on a redis channel so that
// any number of API processes can follow one Postgres LISTEN.
type RedisRelay struct {
	client  Publisher
	channel string
	logger  *slog.Logger
}

func NewRedisRelay(client Publisher, channel string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		logger:  logger.With("relay", channel),
	}
}

// Run publishes until src closes or ctx ends. A resync marker goes out
// first, since subscribers missed whatever changed while no relay was
// running. Publish failures are logged and followed by another marker once
// publishing works again.
func (r *RedisRelay) Run(ctx context.Context, src <-chan events.Notification) error {
	pendingResync := r.publish(ctx, events.Notification{Reconnected: true}) != nil

	for {
		var n events.Notification
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-src:
			if !ok {
				return nil
			}
			n = m
		}

		if pendingResync && !n.Reconnected {
			if err := r.publish(ctx, events.Notification{Reconnected: true}); err != nil {
				continue
			}
			pendingResync = false
		}

		if err := r.publish(ctx, n); err != nil {
			pendingResync = true
		} else if n.Reconnected {
			pendingResync = false
		}
	}
}

func (r *RedisRelay) publish(ctx context.Context, n events.Notification) error {
	channel, payload := r.route(n)
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		r.logger.Error("publish failed", "channel", channel, "error", err)
		return err
	}
	return nil
}

func (r *RedisRelay) route(n events.Notification) (string, []byte) {
	if n.Reconnected {
		return r.channel + ResyncSuffix, []byte("resync")
	}
	return r.channel, n.Payload
}
