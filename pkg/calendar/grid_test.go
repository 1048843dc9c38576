package calendar

import (
	"testing"
	"testing/quick"
	"time"
)

func TestGenerateAnchorsOnSunday(t *testing.T) {
	ref := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC) // Wednesday
	now := time.Date(2024, time.March, 7, 9, 0, 0, 0, time.UTC)
	cells := Generate(ref, now)
	if len(cells) != GridDays {
		t.Fatalf("expected %d cells, got %d", GridDays, len(cells))
	}
	if cells[0].FullDate != "2024-03-03" {
		t.Fatalf("expected grid to start on 2024-03-03, got %s", cells[0].FullDate)
	}
	if cells[27].FullDate != "2024-03-30" {
		t.Fatalf("expected grid to end on 2024-03-30, got %s", cells[27].FullDate)
	}
	today := 0
	for _, c := range cells {
		if c.IsToday {
			today++
			if c.FullDate != "2024-03-07" {
				t.Fatalf("wrong today cell %s", c.FullDate)
			}
		}
	}
	if today != 1 {
		t.Fatalf("expected exactly one today cell, got %d", today)
	}
}

func TestGenerateKeepsFixedWindowAcrossMonthEnd(t *testing.T) {
	// March 31 2024 is a Sunday: the whole window lies in April except day one.
	ref := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	cells := Generate(ref, ref)
	if !cells[0].IsCurrentMonth || cells[0].Day != 31 {
		t.Fatalf("first cell should be March 31 in the current month: %+v", cells[0])
	}
	for _, c := range cells[1:] {
		if c.IsCurrentMonth {
			t.Fatalf("April cell %s flagged as current month", c.FullDate)
		}
	}
}

func TestGenerateTodayIndependentOfReference(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range Generate(ref, now) {
		if c.IsToday {
			t.Fatalf("no cell should be today, got %s", c.FullDate)
		}
	}
}

func TestGenerateAcrossDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ref := time.Date(2024, time.March, 12, 12, 0, 0, 0, loc)
	cells := Generate(ref, ref)
	if cells[0].FullDate != "2024-03-10" || cells[1].FullDate != "2024-03-11" {
		t.Fatalf("unexpected dates around DST: %s %s", cells[0].FullDate, cells[1].FullDate)
	}
}

func TestGenerateProperties(t *testing.T) {
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	prop := func(offsetDays uint16, minutes uint16) bool {
		ref := base.AddDate(0, 0, int(offsetDays)).Add(time.Duration(minutes%1440) * time.Minute)
		cells := Generate(ref, ref)
		if len(cells) != GridDays {
			return false
		}
		if cells[0].Date.Weekday() != time.Sunday || cells[0].Date.After(ref) {
			return false
		}
		if ref.Sub(cells[0].Date) >= 7*24*time.Hour {
			return false
		}
		for i := 1; i < len(cells); i++ {
			if !cells[i].Date.AddDate(0, 0, -1).Equal(cells[i-1].Date) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

func TestWeeks(t *testing.T) {
	rows := Weeks(Generate(time.Now(), time.Now()))
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if len(r) != 7 {
			t.Fatalf("expected 7 cells per row, got %d", len(r))
		}
	}
}
