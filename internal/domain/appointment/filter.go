package appointment

import (
	"strings"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

const StatusAll = "All"

// Filter is the dashboard's table filter. Zero fields match everything.
type Filter struct {
	Search string
	Date   timezone.Date
	Status string
}

func (f Filter) Match(a *models.Appointment) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.FullName), q) &&
			!strings.Contains(strings.ToLower(a.MobileNumber), q) {
			return false
		}
	}
	if !f.Date.IsZero() && a.PreferredDate != f.Date {
		return false
	}
	if f.Status != "" && f.Status != StatusAll && a.Status != f.Status {
		return false
	}
	return true
}

// Apply keeps the order of list.
func (f Filter) Apply(list []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(list))
	for i := range list {
		if f.Match(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out
}

type Counters struct {
	Today     int `json:"today"`
	New       int `json:"new"`
	Confirmed int `json:"confirmed"`
}

func Count(list []models.Appointment, today timezone.Date) Counters {
	var c Counters
	for i := range list {
		if list[i].PreferredDate == today {
			c.Today++
		}
		switch Status(list[i].Status) {
		case StatusNew:
			c.New++
		case StatusConfirmed:
			c.Confirmed++
		}
	}
	return c
}
