package calendar

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	grid "tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/viewmodel"
)

func TestRenderShowsCounts(t *testing.T) {
	ref := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	raw := []appointment.Record{
		{ID: "a", Date: "2024-03-06T09:00:00Z"},
		{ID: "b", Date: "2024-03-06T10:00:00Z"},
	}
	buckets := viewmodel.Buckets(grid.Generate(ref, ref), raw, time.UTC)
	out := Render(buckets, 3, Options{ShowHeader: true})
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 weeks, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Sun") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], " 6 •2") {
		t.Fatalf("expected count on the 6th: %q", lines[1])
	}
}

func TestMoveClamps(t *testing.T) {
	if got := Move(2, -7, 28); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := Move(25, 7, 28); got != 27 {
		t.Fatalf("expected 27, got %d", got)
	}
	if got := Move(10, 7, 28); got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}
}
