package followup

import (
	"testing"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/timezone"
)

var today = timezone.MustParseDate("2025-06-09")

func TestBuildDateRange(t *testing.T) {
	tomorrow := today.AddDays(1)

	if got := BuildDateRange(today, today); len(got) != 0 {
		t.Fatalf("end=today: got %v, want empty", got)
	}
	if got := BuildDateRange(today, today.AddDays(-3)); len(got) != 0 {
		t.Fatalf("end in the past: got %v, want empty", got)
	}

	got := BuildDateRange(today, tomorrow)
	if len(got) != 1 || got[0] != tomorrow {
		t.Fatalf("end=tomorrow: got %v", got)
	}

	end := tomorrow.AddDays(6)
	got = BuildDateRange(today, end)
	if len(got) != 7 {
		t.Fatalf("got %d dates, want 7", len(got))
	}
	if got[0] != tomorrow || got[len(got)-1] != end {
		t.Fatalf("range = %s..%s", got[0], got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Before(got[i]) || got[i-1].AddDays(1) != got[i] {
			t.Fatalf("not contiguous at %d: %s then %s", i, got[i-1], got[i])
		}
	}
}

func TestBuildDateRangeAcrossMonthEnd(t *testing.T) {
	got := BuildDateRange(timezone.MustParseDate("2025-06-29"), timezone.MustParseDate("2025-07-02"))
	want := []string{"2025-06-30", "2025-07-01", "2025-07-02"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSelectionToggleTwiceRestores(t *testing.T) {
	d := timezone.MustParseDate("2025-06-12")
	other := timezone.MustParseDate("2025-06-13")
	s := NewSelection(other)

	s.Toggle(d)
	if !s.Contains(d) || !s.Contains(other) {
		t.Fatalf("toggle should add without touching others")
	}
	s.Toggle(d)
	if s.Contains(d) || !s.Contains(other) || s.Len() != 1 {
		t.Fatalf("second toggle should restore membership")
	}
}

func TestSelectionAllIsOrdered(t *testing.T) {
	s := NewSelection(
		timezone.MustParseDate("2025-06-24"),
		timezone.MustParseDate("2025-06-17"),
		timezone.MustParseDate("2025-07-01"),
	)
	got := s.All()
	if got[0].String() != "2025-06-17" || got[1].String() != "2025-06-24" || got[2].String() != "2025-07-01" {
		t.Fatalf("All() = %v", got)
	}
}

func TestRequestNarrowingRangeDropsStaleSelections(t *testing.T) {
	r := NewRequest("A1")
	r.SetEndDate(today, timezone.MustParseDate("2025-06-20"))
	keep := timezone.MustParseDate("2025-06-12")
	stale := timezone.MustParseDate("2025-06-18")
	r.Toggle(keep)
	r.Toggle(stale)

	r.SetEndDate(today, timezone.MustParseDate("2025-06-15"))
	if len(r.Candidates) != 6 {
		t.Fatalf("candidates = %v", r.Candidates)
	}
	if !r.Selected.Contains(keep) {
		t.Fatalf("date still in range was dropped")
	}
	if r.Selected.Contains(stale) {
		t.Fatalf("stale date survived narrowing")
	}

	r.SetEndDate(today, timezone.Date{})
	if len(r.Candidates) != 0 || r.Selected.Len() != 0 {
		t.Fatalf("clearing end date should clear candidates and selection")
	}
}
