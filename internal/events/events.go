// Package events turns raw change notifications from the appointments
// table into typed events.
package events

import (
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

// Raw is the notification shape published for every row change.
type Raw struct {
	EventType string          `json:"eventType"`
	Table     string          `json:"table"`
	New       json.RawMessage `json:"new"`
	Old       json.RawMessage `json:"old"`
}

// Notification is one item on a change feed: either a payload or a signal
// that the feed reconnected and may have missed changes.
type Notification struct {
	Payload     []byte
	Reconnected bool
}

type Event interface {
	AppointmentID() string
	isEvent()
}

type Created struct{ Appointment models.Appointment }
type Updated struct{ Appointment models.Appointment }
type Deleted struct{ ID string }

func (e Created) AppointmentID() string { return e.Appointment.ID }
func (e Updated) AppointmentID() string { return e.Appointment.ID }
func (e Deleted) AppointmentID() string { return e.ID }

func (Created) isEvent() {}
func (Updated) isEvent() {}
func (Deleted) isEvent() {}

func Decode(payload []byte) (Raw, error) {
	var raw Raw
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Raw{}, httperr.Wrap(httperr.CodeMalformedEvent, err)
	}
	return raw, nil
}

// Normalize maps raw onto Created, Updated or Deleted. It does not look at
// any local state.
func Normalize(raw Raw) (Event, error) {
	switch strings.ToUpper(raw.EventType) {
	case "INSERT":
		a, err := decodeRow(raw.New)
		if err != nil {
			return nil, err
		}
		return Created{Appointment: a}, nil

	case "UPDATE":
		a, err := decodeRow(raw.New)
		if err != nil {
			return nil, err
		}
		return Updated{Appointment: a}, nil

	case "DELETE":
		var old struct {
			ID string `json:"id"`
		}
		if len(raw.Old) == 0 || json.Unmarshal(raw.Old, &old) != nil || old.ID == "" {
			return nil, httperr.New(httperr.CodeMalformedEvent, "delete without row id")
		}
		return Deleted{ID: old.ID}, nil
	}

	return nil, httperr.Newf(httperr.CodeMalformedEvent, "unknown event type %q", strings.TrimSpace(raw.EventType))
}

func decodeRow(b json.RawMessage) (models.Appointment, error) {
	var a models.Appointment
	if len(b) == 0 || string(b) == "null" {
		return a, httperr.New(httperr.CodeMalformedEvent, "missing row")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return a, httperr.Wrap(httperr.CodeMalformedEvent, err)
	}
	if a.ID == "" {
		return a, httperr.New(httperr.CodeMalformedEvent, "row without id")
	}
	return a, nil
}
