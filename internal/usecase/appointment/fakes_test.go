package appointment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/audit"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/syncstore"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// ======================================================
// Fake remote store
// ======================================================

type fakeRepo struct {
	mu sync.Mutex

	rows      map[string]models.Appointment
	updateErr error
	insertErr error

	updates  []map[string]any
	inserted [][]models.Appointment
	nextID   int
}

func newFakeRepo(rows ...models.Appointment) *fakeRepo {
	r := &fakeRepo{rows: map[string]models.Appointment{}}
	for _, a := range rows {
		r.rows[a.ID] = a
	}
	return r
}

func (r *fakeRepo) FetchAll(context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.rows))
	for _, a := range r.rows {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, id string, cols map[string]any) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, cols)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, httperr.New(httperr.CodeNotFound, "appointment not found")
	}

	for k, v := range cols {
		switch k {
		case "status":
			a.Status = v.(string)
		case "assigned_to":
			a.AssignedTo = strOrNil(v)
		case "admin_note":
			a.AdminNote = strOrNil(v)
		case "patient_response":
			a.PatientResponse = strOrNil(v)
		case "appointment_type":
			a.AppointmentType = strOrNil(v)
		case "updated_at":
			a.UpdatedAt = v.(time.Time)
		}
	}
	r.rows[id] = a
	out := a.Clone()
	return &out, nil
}

func (r *fakeRepo) InsertMany(_ context.Context, rows []models.Appointment) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, rows)
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	out := make([]models.Appointment, len(rows))
	for i, a := range rows {
		r.nextID++
		a.ID = fmt.Sprintf("f%d", r.nextID)
		r.rows[a.ID] = a
		out[i] = a.Clone()
	}
	return out, nil
}

func strOrNil(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

// ======================================================
// Helpers
// ======================================================

type memorySink struct {
	mu      sync.Mutex
	actions []string
}

func (m *memorySink) Log(_ context.Context, ev audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, ev.Action)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedNow is 2025-06-10 09:00 UTC.
func fixedNow() time.Time {
	return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
}

func d(s string) timezone.Date { return timezone.MustParseDate(s) }

func ptr[T any](v T) *T { return &v }

func a1() models.Appointment {
	return models.Appointment{
		ID:            "A1",
		FullName:      "Asha Rao",
		MobileNumber:  "9876543210",
		Age:           ptr(41),
		Problem:       ptr("knee pain"),
		PreferredDate: d("2025-06-10"),
		PreferredTime: &timezone.TimeOfDay{Hour: 10, Minute: 30},
		Status:        "New",
		AssignedTo:    ptr("Dr. Mehta"),
	}
}

func loadedStore(repo *fakeRepo) *syncstore.Store {
	s := syncstore.New(repo, discardLogger())
	if _, err := s.LoadSnapshot(context.Background()); err != nil {
		panic(err)
	}
	return s
}
