package sample

import (
	"testing"
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/filter"
)

func TestAppointmentsAreValid(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	all := Appointments(now)
	if len(all) == 0 {
		t.Fatalf("expected sample appointments")
	}
	seen := map[string]bool{}
	for _, r := range all {
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
		if _, err := appointment.ParseDate(r.Date); err != nil {
			t.Fatalf("%s: %v", r.ID, err)
		}
		if !r.Status.Valid() {
			t.Fatalf("%s: invalid status %q", r.ID, r.Status)
		}
	}

	today := filter.Default()
	today.Date = filter.DateToday
	if got := filter.Apply(all, today, now); len(got) != 3 {
		t.Fatalf("expected three appointments today, got %d", len(got))
	}
}
