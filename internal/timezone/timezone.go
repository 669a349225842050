package timezone

import "time"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to the process's local zone for unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	return time.Local
}

// TodayIn returns the calendar day of now in loc.
func TodayIn(loc *time.Location, now time.Time) Date {
	return DateOf(now.In(loc))
}
