// Package dateutil formats appointment timestamps for display. Every helper
// degrades to a sentinel string instead of failing on malformed input.
package dateutil

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/clinic/pkg/appointment"
)

const (
	// KeyLayout is the yyyy-MM-dd layout of date keys.
	KeyLayout = "2006-01-02"

	// InvalidDate is returned by date formatters on parse failure.
	InvalidDate = "Invalid date"
	// InvalidTime is returned by time formatters on parse failure.
	InvalidTime = "Invalid time"

	dateLayout    = "Mon, Jan 2, 2006"
	timeLayout    = "3:04 PM"
	longDayLayout = "Monday, January 2, 2006"
	shortDay      = "January 2, 2006"
)

// Formatter renders dates in a fixed location relative to a clock.
type Formatter struct {
	Location *time.Location
	Now      func() time.Time
}

// Default formats in time.Local against the wall clock.
func Default() Formatter {
	return Formatter{Location: time.Local, Now: time.Now}
}

func (f Formatter) loc() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now().In(f.loc())
	}
	return f.Now().In(f.loc())
}

func (f Formatter) parse(raw string) (time.Time, bool) {
	t, err := appointment.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(f.loc()), true
}

// Date formats raw as "Mon, Jan 2, 2006".
func (f Formatter) Date(raw string) string {
	t, ok := f.parse(raw)
	if !ok {
		return InvalidDate
	}
	return t.Format(dateLayout)
}

// Time formats raw as "3:04 PM".
func (f Formatter) Time(raw string) string {
	t, ok := f.parse(raw)
	if !ok {
		return InvalidTime
	}
	return t.Format(timeLayout)
}

// EndTime formats the start plus minutes as "3:04 PM".
func (f Formatter) EndTime(raw string, minutes int) string {
	t, ok := f.parse(raw)
	if !ok {
		return InvalidTime
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(timeLayout)
}

// Key returns the yyyy-MM-dd calendar date of raw.
func (f Formatter) Key(raw string) (string, bool) {
	t, ok := f.parse(raw)
	if !ok {
		return "", false
	}
	return t.Format(KeyLayout), true
}

// DisplayDay renders an agenda heading for a date key or timestamp:
// "Today, March 1, 2024", "Tomorrow, March 2, 2024" or
// "Saturday, March 3, 2024".
func (f Formatter) DisplayDay(raw string) string {
	var t time.Time
	var ok bool
	if appointment.IsDateOnly(raw) {
		// A bare key names a calendar day, not an instant.
		t, ok = parseKey(raw, f.loc())
	} else {
		t, ok = f.parse(raw)
	}
	if !ok {
		return InvalidDate
	}
	now := f.now()
	switch {
	case SameDay(t, now):
		return "Today, " + t.Format(shortDay)
	case SameDay(t, now.AddDate(0, 0, 1)):
		return "Tomorrow, " + t.Format(shortDay)
	default:
		return t.Format(longDayLayout)
	}
}

func parseKey(raw string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(KeyLayout, strings.TrimSpace(raw), loc)
	return t, err == nil
}

// SameDay reports whether a and b fall on the same calendar date in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, d.Location())
}

// Initials returns the upper-cased first letters of first and last name.
func Initials(first, last string) string {
	var b strings.Builder
	for _, part := range []string{first, last} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
