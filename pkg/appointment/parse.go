package appointment

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for values that are not ISO-8601.
var ErrInvalidDate = errors.New("appointment: invalid date")

// zonedLayouts carry their own offset. PocketBase writes a space instead of
// the "T" separator ("2024-03-01 09:00:00.000Z").
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// localLayouts have no offset and are read in time.Local, like the browser
// client did.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 forms the document store and users produce.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// IsDateOnly reports whether raw is a bare yyyy-MM-dd value.
func IsDateOnly(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}
