package appointment

import (
	"time"

	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/dto"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/syncstore"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// Projection is the read side of the local replica.
type Projection interface {
	View() syncstore.View
}

type ListResult struct {
	Appointments []dto.AppointmentListDTO `json:"appointments"`
	Counters     domain.Counters          `json:"counters"`
	Loading      bool                     `json:"loading"`
	ErrorCode    string                   `json:"error_code,omitempty"`
	Error        string                   `json:"error,omitempty"`
	Version      uint64                   `json:"version"`
}

type ListAppointments struct {
	projection Projection
	loc        *time.Location

	now func() time.Time
}

func NewListAppointments(
	projection Projection,
	loc *time.Location,
) *ListAppointments {
	return &ListAppointments{
		projection: projection,
		loc:        loc,
		now:        time.Now,
	}
}

// Execute filters the replica. Counters always cover the whole collection
// so the header stays stable while the table is being filtered.
func (uc *ListAppointments) Execute(filter domain.Filter) ListResult {
	view := uc.projection.View()
	today := timezone.TodayIn(uc.loc, uc.now())

	matched := filter.Apply(view.Appointments)
	out := make([]dto.AppointmentListDTO, 0, len(matched))
	for _, a := range matched {
		out = append(out, dto.AppointmentList(a, today))
	}

	res := ListResult{
		Appointments: out,
		Counters:     domain.Count(view.Appointments, today),
		Loading:      view.Loading,
		Version:      view.Version,
	}
	if view.Err != nil {
		res.ErrorCode = httperr.CodeOf(view.Err)
		res.Error = httperr.MessageOf(view.Err)
	}
	return res
}
