package appointment

import (
	"testing"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

func fixture() []models.Appointment {
	return []models.Appointment{
		{ID: "1", FullName: "Asha Rao", MobileNumber: "9876500001", Status: "New", PreferredDate: timezone.MustParseDate("2025-06-10")},
		{ID: "2", FullName: "Vikram Rao", MobileNumber: "9876500002", Status: "Confirmed", PreferredDate: timezone.MustParseDate("2025-06-10")},
		{ID: "3", FullName: "Meena Pillai", MobileNumber: "9123400003", Status: "Confirmed", PreferredDate: timezone.MustParseDate("2025-06-11")},
	}
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero matches all", Filter{}, []string{"1", "2", "3"}},
		{"all status", Filter{Status: StatusAll}, []string{"1", "2", "3"}},
		{"search name case-insensitive", Filter{Search: "RAO"}, []string{"1", "2"}},
		{"search mobile", Filter{Search: "91234"}, []string{"3"}},
		{"date", Filter{Date: timezone.MustParseDate("2025-06-11")}, []string{"3"}},
		{"status", Filter{Status: "Confirmed"}, []string{"2", "3"}},
		{"combined", Filter{Search: "rao", Status: "Confirmed"}, []string{"2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(fixture())
			if len(got) != len(tc.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("row %d = %s, want %s", i, got[i].ID, tc.want[i])
				}
			}
		})
	}
}

func TestCount(t *testing.T) {
	c := Count(fixture(), timezone.MustParseDate("2025-06-10"))
	if c != (Counters{Today: 2, New: 1, Confirmed: 2}) {
		t.Fatalf("counters = %+v", c)
	}
}
