package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (m *memorySink) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func TestDispatcherFlushesOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(Event{Action: "appointment_updated", Entity: "appointment", EntityID: "a"})
	d.Dispatch(Event{Action: "followups_created", Entity: "appointment", EntityID: "a"})
	d.Close()

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if sink.events[0].Action != "appointment_updated" {
		t.Fatalf("order lost: %+v", sink.events)
	}
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db gone")}
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	if len(sink.events) != 2 {
		t.Fatalf("worker stopped after a sink error")
	}
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(Event{Action: "appointment_updated"})
	d.Close()
	d.Dispatch(Event{Action: "followups_created"})
	d.Close()

	if len(sink.events) != 1 || sink.events[0].Action != "appointment_updated" {
		t.Fatalf("events = %+v", sink.events)
	}
}
