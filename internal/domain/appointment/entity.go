package appointment

import (
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

// DeriveFollowUps builds one confirmed follow-up per date from the source
// appointment. assignee wins over the source's own assignee when non-empty.
func DeriveFollowUps(
	source models.Appointment,
	dates []timezone.Date,
	assignee string,
) []models.Appointment {

	assignedTo := source.AssignedTo
	if assignee != "" {
		assignedTo = &assignee
	}

	note := "Follow-up appointment created from " + source.PreferredDate.String()
	followUpType := string(TypeFollowUp)

	out := make([]models.Appointment, 0, len(dates))
	for _, d := range dates {
		src := source.Clone()
		out = append(out, models.Appointment{
			FullName:        src.FullName,
			MobileNumber:    src.MobileNumber,
			Problem:         src.Problem,
			PreferredDate:   d,
			PreferredTime:   src.PreferredTime,
			Age:             src.Age,
			Gender:          src.Gender,
			Status:          string(StatusConfirmed),
			AppointmentType: &followUpType,
			AssignedTo:      clone(assignedTo),
			AdminNote:       clone(&note),
		})
	}
	return out
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
