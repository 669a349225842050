package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/domain/followup"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

type FollowUpDates struct {
	Candidates []timezone.Date `json:"candidates"`
	Selected   []timezone.Date `json:"selected"`
}

// ListFollowUpDates backs the follow-up picker: candidates for an end date
// plus whichever of the previous picks are still in range.
type ListFollowUpDates struct {
	loc *time.Location
	now func() time.Time
}

func NewListFollowUpDates(loc *time.Location) *ListFollowUpDates {
	return &ListFollowUpDates{loc: loc, now: time.Now}
}

func (uc *ListFollowUpDates) Execute(end timezone.Date, selected []timezone.Date) FollowUpDates {
	req := followup.NewRequest("")
	for _, d := range selected {
		if !req.Selected.Contains(d) {
			req.Toggle(d)
		}
	}
	req.SetEndDate(timezone.TodayIn(uc.loc, uc.now()), end)

	return FollowUpDates{
		Candidates: req.Candidates,
		Selected:   req.Dates(),
	}
}
