package appointment

import (
	"testing"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

func TestDeriveFollowUps(t *testing.T) {
	tm := timezone.TimeOfDay{Hour: 11}
	source := models.Appointment{
		ID:            "A1",
		FullName:      "Ravi Kumar",
		MobileNumber:  "9000000001",
		Problem:       ptr("back pain"),
		PreferredDate: timezone.MustParseDate("2025-06-10"),
		PreferredTime: &tm,
		Age:           ptr(51),
		Gender:        ptr("Male"),
		Status:        "Confirmed",
		AssignedTo:    ptr("Dr. Iyer"),
		AdminNote:     ptr("original note"),
	}
	dates := []timezone.Date{
		timezone.MustParseDate("2025-06-17"),
		timezone.MustParseDate("2025-06-24"),
	}

	rows := DeriveFollowUps(source, dates, "")
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, r := range rows {
		if r.ID != "" {
			t.Errorf("row %d carries an id; the store assigns identity", i)
		}
		if r.PreferredDate != dates[i] {
			t.Errorf("row %d date = %s", i, r.PreferredDate)
		}
		if r.Status != "Confirmed" || r.AppointmentType == nil || *r.AppointmentType != "Follow-up" {
			t.Errorf("row %d status/type = %s/%v", i, r.Status, r.AppointmentType)
		}
		if r.FullName != source.FullName || r.MobileNumber != source.MobileNumber {
			t.Errorf("row %d patient fields not copied", i)
		}
		if r.PreferredTime == nil || r.PreferredTime.String() != "11:00:00" {
			t.Errorf("row %d time = %v", i, r.PreferredTime)
		}
		if *r.AssignedTo != "Dr. Iyer" {
			t.Errorf("row %d assignee = %s", i, *r.AssignedTo)
		}
		if *r.AdminNote != "Follow-up appointment created from 2025-06-10" {
			t.Errorf("row %d note = %q", i, *r.AdminNote)
		}
	}

	// rows must not alias the source or each other
	*rows[0].PreferredTime = timezone.TimeOfDay{Hour: 9}
	if source.PreferredTime.Hour != 11 || rows[1].PreferredTime.Hour != 11 {
		t.Fatalf("derived rows share pointers")
	}
}

func TestDeriveFollowUpsAssigneeOverride(t *testing.T) {
	source := models.Appointment{PreferredDate: timezone.MustParseDate("2025-06-10")}
	rows := DeriveFollowUps(source, []timezone.Date{timezone.MustParseDate("2025-06-11")}, "Dr. Shah")
	if rows[0].AssignedTo == nil || *rows[0].AssignedTo != "Dr. Shah" {
		t.Fatalf("assignee = %v", rows[0].AssignedTo)
	}
}
