package followup

import (
	"slices"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// Selection is the set of candidate dates picked to become real
// appointments.
type Selection struct {
	dates map[timezone.Date]struct{}
}

func NewSelection(dates ...timezone.Date) *Selection {
	s := &Selection{dates: make(map[timezone.Date]struct{}, len(dates))}
	for _, d := range dates {
		s.dates[d] = struct{}{}
	}
	return s
}

func (s *Selection) Toggle(d timezone.Date) {
	if _, ok := s.dates[d]; ok {
		delete(s.dates, d)
		return
	}
	s.dates[d] = struct{}{}
}

func (s *Selection) Contains(d timezone.Date) bool {
	_, ok := s.dates[d]
	return ok
}

func (s *Selection) Len() int {
	return len(s.dates)
}

// All returns the selected dates in calendar order.
func (s *Selection) All() []timezone.Date {
	out := make([]timezone.Date, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	slices.SortFunc(out, timezone.Date.Compare)
	return out
}

// Retain drops every selected date that is not among candidates.
func (s *Selection) Retain(candidates []timezone.Date) {
	keep := make(map[timezone.Date]struct{}, len(candidates))
	for _, d := range candidates {
		keep[d] = struct{}{}
	}
	for d := range s.dates {
		if _, ok := keep[d]; !ok {
			delete(s.dates, d)
		}
	}
}
