// Package viewmodel projects a filtered appointment list into the shapes the
// agenda and calendar views render, so UI layers never re-derive date keys.
package viewmodel

import (
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/dateutil"
)

// DayGroup holds the appointments sharing one calendar date.
type DayGroup struct {
	Key          string               `json:"date"`
	Appointments []appointment.Record `json:"appointments"`
}

// Agenda is an ordered date-key grouping.
type Agenda struct {
	Days []DayGroup `json:"days"`
	// Skipped counts records left out because their date does not parse.
	Skipped int `json:"skipped,omitempty"`
}

// Keys returns the date keys in order.
func (a Agenda) Keys() []string {
	keys := make([]string, len(a.Days))
	for i, d := range a.Days {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns the group for key.
func (a Agenda) Lookup(key string) ([]appointment.Record, bool) {
	for _, d := range a.Days {
		if d.Key == key {
			return d.Appointments, true
		}
	}
	return nil, false
}

// GroupByDate groups records by their yyyy-MM-dd date in loc. Groups appear
// in first-occurrence order and keep the input order inside each group, so a
// list sorted by start yields chronological days and slots.
func GroupByDate(records []appointment.Record, loc *time.Location) Agenda {
	agenda := Agenda{Days: []DayGroup{}}
	index := make(map[string]int)
	for _, r := range records {
		key, ok := dateKey(r, loc)
		if !ok {
			agenda.Skipped++
			continue
		}
		i, found := index[key]
		if !found {
			i = len(agenda.Days)
			index[key] = i
			agenda.Days = append(agenda.Days, DayGroup{Key: key})
		}
		agenda.Days[i].Appointments = append(agenda.Days[i].Appointments, r)
	}
	return agenda
}

// ForDay returns the records of raw whose date key equals key. It is meant
// for the unfiltered snapshot: the calendar shows every appointment of a day
// regardless of the active search and status filters.
func ForDay(raw []appointment.Record, key string, loc *time.Location) []appointment.Record {
	out := []appointment.Record{}
	for _, r := range raw {
		if k, ok := dateKey(r, loc); ok && k == key {
			out = append(out, r)
		}
	}
	return out
}

// DayBucket is a calendar cell together with its appointments.
type DayBucket struct {
	calendar.DayCell
	Appointments []appointment.Record `json:"appointments"`
}

// Buckets attaches ForDay(raw) to every cell.
func Buckets(cells []calendar.DayCell, raw []appointment.Record, loc *time.Location) []DayBucket {
	byKey := make(map[string][]appointment.Record)
	for _, r := range raw {
		if k, ok := dateKey(r, loc); ok {
			byKey[k] = append(byKey[k], r)
		}
	}
	out := make([]DayBucket, len(cells))
	for i, c := range cells {
		appts := byKey[c.FullDate]
		if appts == nil {
			appts = []appointment.Record{}
		}
		out[i] = DayBucket{DayCell: c, Appointments: appts}
	}
	return out
}

func dateKey(r appointment.Record, loc *time.Location) (string, bool) {
	return dateutil.Formatter{Location: loc}.Key(r.Date)
}
