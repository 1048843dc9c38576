package dateutil

import (
	"testing"
	"time"
)

func fixed(t time.Time) Formatter {
	return Formatter{Location: time.UTC, Now: func() time.Time { return t }}
}

func TestFormatters(t *testing.T) {
	f := fixed(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	if got := f.Date("2024-03-01T09:05:00Z"); got != "Fri, Mar 1, 2024" {
		t.Fatalf("Date = %q", got)
	}
	if got := f.Time("2024-03-01T09:05:00Z"); got != "9:05 AM" {
		t.Fatalf("Time = %q", got)
	}
	if got := f.EndTime("2024-03-01T23:45:00Z", 30); got != "12:15 AM" {
		t.Fatalf("EndTime = %q", got)
	}
	if got, ok := f.Key("2024-03-01T23:45:00-02:00"); !ok || got != "2024-03-02" {
		t.Fatalf("Key = %q (%v)", got, ok)
	}
}

func TestFormattersDegradeOnMalformedInput(t *testing.T) {
	f := fixed(time.Now())
	if got := f.Date("not-a-date"); got != InvalidDate {
		t.Fatalf("Date = %q", got)
	}
	if got := f.Time("not-a-date"); got != InvalidTime {
		t.Fatalf("Time = %q", got)
	}
	if got := f.EndTime("", 30); got != InvalidTime {
		t.Fatalf("EndTime = %q", got)
	}
	if got := f.DisplayDay("nope"); got != InvalidDate {
		t.Fatalf("DisplayDay = %q", got)
	}
	if _, ok := f.Key("nope"); ok {
		t.Fatalf("Key should fail for malformed input")
	}
}

func TestDisplayDay(t *testing.T) {
	f := fixed(time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC))
	cases := map[string]string{
		"2024-03-01": "Today, March 1, 2024",
		"2024-03-02": "Tomorrow, March 2, 2024",
		"2024-03-04": "Monday, March 4, 2024",
	}
	for in, want := range cases {
		if got := f.DisplayDay(in); got != want {
			t.Fatalf("DisplayDay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStartOfWeekIsSunday(t *testing.T) {
	wed := time.Date(2024, time.March, 6, 15, 0, 0, 0, time.UTC)
	got := StartOfWeek(wed)
	want := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartOfWeek = %v, want %v", got, want)
	}
	sun := time.Date(2024, time.March, 3, 8, 0, 0, 0, time.UTC)
	if !StartOfWeek(sun).Equal(want) {
		t.Fatalf("Sunday should start its own week")
	}
}

func TestInitials(t *testing.T) {
	if got := Initials("ada", "lovelace"); got != "AL" {
		t.Fatalf("Initials = %q", got)
	}
	if got := Initials("", ""); got != "?" {
		t.Fatalf("Initials of empty = %q", got)
	}
	if got := Initials("émile", ""); got != "É" {
		t.Fatalf("Initials = %q", got)
	}
}
