package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
)

// PostgresFeed listens on a NOTIFY channel over a dedicated connection.
// Payloads are limited to 8000 bytes by Postgres, which fits one
// appointment row.
type PostgresFeed struct {
	dsn            string
	channel        string
	reconnectDelay time.Duration
	logger         *slog.Logger
}

func NewPostgresFeed(dsn, channel string, reconnectDelay time.Duration, logger *slog.Logger) *PostgresFeed {
	return &PostgresFeed{
		dsn:            dsn,
		channel:        channel,
		reconnectDelay: reconnectDelay,
		logger:         logger.With("feed", "postgres", "channel", channel),
	}
}

// Subscribe fails only when the first LISTEN cannot be established. Later
// connection losses are retried forever and announced with a Reconnected
// notification once the LISTEN is back.
func (f *PostgresFeed) Subscribe(ctx context.Context) (<-chan events.Notification, error) {
	conn, err := f.listen(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan events.Notification, bufferSize)
	go f.loop(ctx, conn, out)
	return out, nil
}

func (f *PostgresFeed) listen(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{f.channel}.Sanitize()); err != nil {
		conn.Close(context.Background())
		return nil, err
	}
	return conn, nil
}

func (f *PostgresFeed) loop(ctx context.Context, conn *pgx.Conn, out chan<- events.Notification) {
	defer close(out)
	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err == nil {
			if !send(ctx, out, events.Notification{Payload: []byte(n.Payload)}) {
				return
			}
			continue
		}
		if ctx.Err() != nil {
			return
		}

		f.logger.Warn("listen connection lost", "error", err)
		conn.Close(context.Background())
		conn = nil

		for conn == nil {
			if !sleep(ctx, f.reconnectDelay) {
				return
			}
			if conn, err = f.listen(ctx); err != nil {
				f.logger.Warn("listen reconnect failed", "error", err)
			}
		}

		f.logger.Info("listen re-established")
		if !send(ctx, out, events.Notification{Reconnected: true}) {
			return
		}
	}
}
