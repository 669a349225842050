package events

import (
	"testing"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
)

const row = `{"id":"A1","full_name":"Asha Rao","mobile_number":"98765","preferred_date":"2025-06-10","preferred_time":null,"status":"New"}`

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		check   func(t *testing.T, ev Event)
	}{
		{
			name:    "insert",
			payload: `{"eventType":"INSERT","table":"appointments","new":` + row + `,"old":null}`,
			check: func(t *testing.T, ev Event) {
				c, ok := ev.(Created)
				if !ok || c.Appointment.FullName != "Asha Rao" {
					t.Fatalf("got %#v", ev)
				}
			},
		},
		{
			name:    "update lower-case tag",
			payload: `{"eventType":"update","new":` + row + `}`,
			check: func(t *testing.T, ev Event) {
				if _, ok := ev.(Updated); !ok {
					t.Fatalf("got %#v", ev)
				}
			},
		},
		{
			name:    "delete",
			payload: `{"eventType":"DELETE","new":null,"old":{"id":"A1"}}`,
			check: func(t *testing.T, ev Event) {
				d, ok := ev.(Deleted)
				if !ok || d.ID != "A1" {
					t.Fatalf("got %#v", ev)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Decode([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			ev, err := Normalize(raw)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if ev.AppointmentID() != "A1" {
				t.Fatalf("id = %q", ev.AppointmentID())
			}
			tc.check(t, ev)
		})
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	payloads := map[string]string{
		"unknown tag":      `{"eventType":"TRUNCATE"}`,
		"missing tag":      `{"new":` + row + `}`,
		"insert no row":    `{"eventType":"INSERT","new":null}`,
		"update bad row":   `{"eventType":"UPDATE","new":{"preferred_date":"June 10"}}`,
		"update no id":     `{"eventType":"UPDATE","new":{"full_name":"x"}}`,
		"delete no old id": `{"eventType":"DELETE","old":{}}`,
	}
	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			raw, err := Decode([]byte(p))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, err := Normalize(raw); !httperr.IsBusiness(err, httperr.CodeMalformedEvent) {
				t.Fatalf("expected malformed_event, got %v", err)
			}
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); !httperr.IsBusiness(err, httperr.CodeMalformedEvent) {
		t.Fatalf("expected malformed_event, got %v", err)
	}
}
