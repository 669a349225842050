package syncstore

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
)

// Feed is a live change subscription. The returned channel is closed when
// ctx ends or the feed gives up.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan events.Notification, error)
}

// Session owns one dashboard subscription: it feeds change events into the
// store in delivery order from a single goroutine and reloads the snapshot
// whenever the feed reports a reconnect.
type Session struct {
	store  *Store
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// Start subscribes before loading the first snapshot so that no change
// committed in between is lost. A failed first snapshot is recorded on the
// store view and does not stop the session.
func Start(ctx context.Context, store *Store, feed Feed, logger *slog.Logger) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := feed.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Session{
		store:  store,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	_, _ = store.LoadSnapshot(ctx)

	go s.run(ctx, stream)
	return s, nil
}

func (s *Session) run(ctx context.Context, stream <-chan events.Notification) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-stream:
			if !ok {
				s.logger.Warn("change feed closed")
				return
			}
			s.handle(ctx, n)
		}
	}
}

func (s *Session) handle(ctx context.Context, n events.Notification) {
	if n.Reconnected {
		s.logger.Info("change feed reconnected, reloading snapshot")
		_, _ = s.store.LoadSnapshot(ctx)
		return
	}

	raw, err := events.Decode(n.Payload)
	if err == nil {
		var ev events.Event
		ev, err = events.Normalize(raw)
		if err == nil {
			s.store.Apply(ev)
			return
		}
	}
	s.logger.Warn("dropping change event", "error", err)
}

// Close tears the subscription down and waits for the consumer to exit.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

// Done is closed once the consumer has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
