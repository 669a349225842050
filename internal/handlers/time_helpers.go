package handlers

import (
	"strings"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(s string) (timezone.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return timezone.Date{}, nil
	}
	return timezone.ParseDate(s)
}

// parseDateList accepts repeated values and comma separated lists.
func parseDateList(values []string) ([]timezone.Date, error) {
	var out []timezone.Date
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			d, err := timezone.ParseDate(part)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}
