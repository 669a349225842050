package appointment

import (
	"strings"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

// Compare orders appointments by preferred date, then preferred time with
// unscheduled times last. The id breaks remaining ties so that every
// collection has exactly one sorted arrangement.
func Compare(a, b *models.Appointment) int {
	if c := a.PreferredDate.Compare(b.PreferredDate); c != 0 {
		return c
	}
	switch {
	case a.PreferredTime == nil && b.PreferredTime != nil:
		return 1
	case a.PreferredTime != nil && b.PreferredTime == nil:
		return -1
	case a.PreferredTime != nil && b.PreferredTime != nil:
		if c := a.PreferredTime.Compare(*b.PreferredTime); c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID, b.ID)
}

// IsSorted reports whether list respects Compare.
func IsSorted(list []models.Appointment) bool {
	for i := 1; i < len(list); i++ {
		if Compare(&list[i-1], &list[i]) > 0 {
			return false
		}
	}
	return true
}
