package followup

import "github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"

// Request lives for one edit session of a source appointment and is
// discarded when the session saves or cancels.
type Request struct {
	SourceAppointmentID string
	EndDate             timezone.Date
	Candidates          []timezone.Date
	Selected            *Selection
}

func NewRequest(sourceID string) *Request {
	return &Request{
		SourceAppointmentID: sourceID,
		Candidates:          []timezone.Date{},
		Selected:            NewSelection(),
	}
}

// SetEndDate regenerates the candidates and silently drops selections that
// fell out of the new range. A zero end clears everything.
func (r *Request) SetEndDate(today, end timezone.Date) {
	r.EndDate = end
	if end.IsZero() {
		r.Candidates = []timezone.Date{}
	} else {
		r.Candidates = BuildDateRange(today, end)
	}
	r.Selected.Retain(r.Candidates)
}

func (r *Request) Toggle(d timezone.Date) {
	r.Selected.Toggle(d)
}

// Dates is what the save should materialize.
func (r *Request) Dates() []timezone.Date {
	return r.Selected.All()
}
