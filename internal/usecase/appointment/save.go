package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/audit"
	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/domain/followup"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// Store is the local replica a save writes its confirmed results into.
type Store interface {
	Get(id string) (models.Appointment, bool)
	Apply(ev events.Event)
}

// ======================================================
// OUTCOME
// ======================================================

type SaveState string

const (
	StateIdle              SaveState = "idle"
	StateValidating        SaveState = "validating"
	StatePrimaryUpdating   SaveState = "primary_updating"
	StatePrimaryFailed     SaveState = "primary_failed"
	StatePrimarySucceeded  SaveState = "primary_succeeded"
	StateDone              SaveState = "done"
	StateFollowUpCreating  SaveState = "followup_creating"
	StateFollowUpFailed    SaveState = "followup_failed"
	StateFollowUpSucceeded SaveState = "followup_succeeded"
)

// Terminal reports whether no further transition can follow s.
func (s SaveState) Terminal() bool {
	switch s {
	case StatePrimaryFailed, StateDone, StateFollowUpFailed, StateFollowUpSucceeded:
		return true
	}
	return false
}

type PrimaryResult struct {
	Appointment *models.Appointment
	Err         error
}

func (r PrimaryResult) OK() bool { return r.Err == nil }

type FollowUpResult struct {
	Requested    int
	Appointments []models.Appointment
	Err          error
}

func (r FollowUpResult) OK() bool { return r.Err == nil }

// Created is the number of follow-ups that exist after the batch.
func (r FollowUpResult) Created() int { return len(r.Appointments) }

// SaveOutcome keeps the two phases apart. FollowUp is nil when the batch
// was never attempted.
type SaveOutcome struct {
	State    SaveState
	Primary  PrimaryResult
	FollowUp *FollowUpResult
}

// Message is the text the front desk sees after a save.
func (o SaveOutcome) Message() string {
	switch o.State {
	case StatePrimaryFailed:
		return "Appointment was not updated: " + httperr.MessageOf(o.Primary.Err)
	case StateDone:
		return "Appointment updated."
	case StateFollowUpSucceeded:
		return fmt.Sprintf("Appointment updated. %d follow-up appointment(s) created.", o.FollowUp.Created())
	case StateFollowUpFailed:
		return fmt.Sprintf(
			"Appointment updated, but %d follow-up appointment(s) failed to create: %s",
			o.FollowUp.Requested, httperr.MessageOf(o.FollowUp.Err),
		)
	}
	return string(o.State)
}

// ======================================================
// USE CASE
// ======================================================

type SaveInput struct {
	ActorID       string
	AppointmentID string
	Fields        domain.FieldUpdates
	FollowUpDates []timezone.Date
}

type SaveAppointment struct {
	repo   domain.Repository
	store  Store
	audit  *audit.Dispatcher
	loc    *time.Location
	logger *slog.Logger

	now func() time.Time
}

func NewSaveAppointment(
	repo domain.Repository,
	store Store,
	audit *audit.Dispatcher,
	loc *time.Location,
	logger *slog.Logger,
) *SaveAppointment {
	return &SaveAppointment{
		repo:   repo,
		store:  store,
		audit:  audit,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// Execute runs the primary update and, only when it succeeded, the
// follow-up batch. Failures are reported on the outcome, never as a
// returned error.
func (uc *SaveAppointment) Execute(ctx context.Context, in SaveInput) SaveOutcome {
	out := SaveOutcome{State: StateIdle}
	log := uc.logger.With("appointment_id", in.AppointmentID)

	// --------------------------------------------------
	// Validating
	// --------------------------------------------------

	out.State = StateValidating
	dates, err := uc.validate(in)
	if err != nil {
		out.State = StatePrimaryFailed
		out.Primary.Err = err
		log.Info("save rejected", "error", err)
		return out
	}

	// --------------------------------------------------
	// Primary update
	// --------------------------------------------------

	out.State = StatePrimaryUpdating
	local, hadLocal := uc.store.Get(in.AppointmentID)

	updated, err := uc.repo.Update(ctx, in.AppointmentID, in.Fields.Columns(uc.now()))
	if err != nil {
		err = httperr.Classify(err, httperr.CodeTransient)
		out.State = StatePrimaryFailed
		out.Primary.Err = err
		log.Error("appointment update failed", "code", httperr.CodeOf(err), "error", err)
		uc.dispatch(in, "appointment_update_failed", map[string]any{"error_code": httperr.CodeOf(err)})
		return out
	}

	if updated == nil {
		if !hadLocal {
			out.State = StatePrimaryFailed
			out.Primary.Err = httperr.New(httperr.CodeNotFound, "appointment not found")
			return out
		}
		updated = &local
	} else {
		uc.store.Apply(events.Updated{Appointment: *updated})
	}

	out.State = StatePrimarySucceeded
	out.Primary.Appointment = updated
	log.Info("appointment updated", "status", updated.Status)
	uc.dispatch(in, "appointment_updated", nil)

	if len(dates) == 0 {
		out.State = StateDone
		return out
	}

	// --------------------------------------------------
	// Follow-up batch
	// --------------------------------------------------

	out.State = StateFollowUpCreating
	var assignee string
	if in.Fields.AssignedTo != nil {
		assignee = *in.Fields.AssignedTo
	}
	rows := domain.DeriveFollowUps(*updated, dates, assignee)

	out.FollowUp = &FollowUpResult{Requested: len(rows)}

	created, err := uc.repo.InsertMany(ctx, rows)
	if err != nil {
		err = httperr.Classify(err, httperr.CodeTransient)
		out.State = StateFollowUpFailed
		out.FollowUp.Err = err
		log.Error("follow-up batch failed", "requested", len(rows), "error", err)
		uc.dispatch(in, "followups_failed", map[string]any{
			"requested":  len(rows),
			"error_code": httperr.CodeOf(err),
		})
		return out
	}

	for _, a := range created {
		uc.store.Apply(events.Created{Appointment: a})
	}

	out.State = StateFollowUpSucceeded
	out.FollowUp.Appointments = created
	log.Info("follow-ups created", "count", len(created))
	uc.dispatch(in, "followups_created", map[string]any{"count": len(created), "dates": dates})

	return out
}

// validate checks the form and returns the follow-up dates deduplicated in
// calendar order. Nothing here touches the network.
func (uc *SaveAppointment) validate(in SaveInput) ([]timezone.Date, error) {
	if in.AppointmentID == "" {
		return nil, httperr.New(httperr.CodeValidation, "appointment id is required")
	}
	if err := in.Fields.Validate(); err != nil {
		return nil, err
	}

	tomorrow := timezone.TodayIn(uc.loc, uc.now()).AddDays(1)
	for _, d := range in.FollowUpDates {
		if d.IsZero() || d.Before(tomorrow) {
			return nil, httperr.Newf(httperr.CodeValidation, "follow-up date must be after today: %s", d)
		}
	}

	return followup.NewSelection(in.FollowUpDates...).All(), nil
}

func (uc *SaveAppointment) dispatch(in SaveInput, action string, meta any) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: in.AppointmentID,
		Metadata: meta,
	})
}
