// Package followup holds the date picking behind follow-up appointments:
// the candidate range after an end date is chosen and the user's
// selection within it.
package followup

import "github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"

// BuildDateRange returns every calendar day from the day after today
// through end inclusive. An end before tomorrow yields an empty range.
func BuildDateRange(today, end timezone.Date) []timezone.Date {
	start := today.AddDays(1)
	if end.Before(start) {
		return []timezone.Date{}
	}

	var dates []timezone.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
