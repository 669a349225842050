package syncstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

type fakeFeed struct {
	ch  chan events.Notification
	err error
}

func (f *fakeFeed) Subscribe(context.Context) (<-chan events.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

// waitFor polls until cond holds; the session applies events on its own
// goroutine.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestSessionAppliesEventsInOrder(t *testing.T) {
	f := &fakeFetcher{rows: []models.Appointment{appt("a", "2025-06-10", 9, "New")}}
	store := New(f, discardLogger())
	feed := &fakeFeed{ch: make(chan events.Notification, 8)}

	sess, err := Start(context.Background(), store, feed, discardLogger())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sess.Close()

	feed.ch <- events.Notification{Payload: []byte(`{"eventType":"UPDATE","new":{"id":"a","full_name":"x","mobile_number":"1","preferred_date":"2025-06-10","status":"Confirmed"}}`)}
	feed.ch <- events.Notification{Payload: []byte(`{"eventType":"TRUNCATE"}`)}
	feed.ch <- events.Notification{Payload: []byte(`{"eventType":"UPDATE","new":{"id":"a","full_name":"x","mobile_number":"1","preferred_date":"2025-06-10","status":"Completed"}}`)}
	feed.ch <- events.Notification{Payload: []byte(`{"eventType":"UPDATE","new":{"id":"n","full_name":"y","mobile_number":"2","preferred_date":"2025-06-11","status":"New"}}`)}

	waitFor(t, func() bool { return len(store.View().Appointments) == 2 })
	got, _ := store.Get("a")
	if got.Status != "Completed" {
		t.Fatalf("later event should win, status = %s", got.Status)
	}
}

func TestSessionReloadsSnapshotOnReconnect(t *testing.T) {
	f := &fakeFetcher{rows: []models.Appointment{appt("a", "2025-06-10", 9, "New")}}
	store := New(f, discardLogger())
	feed := &fakeFeed{ch: make(chan events.Notification, 1)}

	sess, err := Start(context.Background(), store, feed, discardLogger())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sess.Close()

	if f.callCount() != 1 {
		t.Fatalf("expected the initial snapshot, got %d fetches", f.callCount())
	}

	// a row created while the feed was down
	f.set([]models.Appointment{
		appt("a", "2025-06-10", 9, "New"),
		appt("b", "2025-06-11", 9, "New"),
	}, nil)
	feed.ch <- events.Notification{Reconnected: true}

	waitFor(t, func() bool { return len(store.View().Appointments) == 2 })
	if f.callCount() != 2 {
		t.Fatalf("fetches = %d, want 2", f.callCount())
	}
}

func TestSessionSurvivesFailedInitialSnapshot(t *testing.T) {
	f := &fakeFetcher{err: errors.New("timeout")}
	store := New(f, discardLogger())
	feed := &fakeFeed{ch: make(chan events.Notification, 1)}

	sess, err := Start(context.Background(), store, feed, discardLogger())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sess.Close()

	if store.View().Err == nil {
		t.Fatalf("view should expose the fetch error")
	}
	feed.ch <- events.Notification{Payload: []byte(`{"eventType":"INSERT","new":{"id":"a","full_name":"x","mobile_number":"1","preferred_date":"2025-06-10","status":"New"}}`)}
	waitFor(t, func() bool { return len(store.View().Appointments) == 1 })
}

func TestSessionSubscribeFailure(t *testing.T) {
	store := New(&fakeFetcher{}, discardLogger())
	if _, err := Start(context.Background(), store, &fakeFeed{err: errors.New("refused")}, discardLogger()); err == nil {
		t.Fatalf("expected subscribe error")
	}
}

func TestSessionCloseStopsConsumer(t *testing.T) {
	store := New(&fakeFetcher{}, discardLogger())
	feed := &fakeFeed{ch: make(chan events.Notification)}
	sess, err := Start(context.Background(), store, feed, discardLogger())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sess.Close()
	select {
	case <-sess.Done():
	default:
		t.Fatalf("consumer still running after Close")
	}
}
