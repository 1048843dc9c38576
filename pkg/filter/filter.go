package filter

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/dateutil"
)

// Apply returns the records matching every active predicate of f, ordered by
// start time. Calendar comparisons use now's location. The input slice is not
// modified.
func Apply(records []appointment.Record, f Filters, now time.Time) []appointment.Record {
	if len(records) == 0 {
		return []appointment.Record{}
	}
	query := strings.ToLower(f.SearchQuery)
	datePred := newDatePredicate(f, now)
	status, byStatus := f.Status.Status()

	out := make([]appointment.Record, 0, len(records))
	for _, r := range records {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if !datePred(r) {
			continue
		}
		if byStatus && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	SortByStart(out)
	return out
}

func matchesQuery(r appointment.Record, lowered string) bool {
	return strings.Contains(strings.ToLower(r.PatientName()), lowered) ||
		strings.Contains(strings.ToLower(r.Type), lowered) ||
		strings.Contains(strings.ToLower(r.Notes), lowered)
}

// MatchesDate evaluates the date predicate of f for a single record.
func MatchesDate(r appointment.Record, f Filters, now time.Time) bool {
	return newDatePredicate(f, now)(r)
}

func newDatePredicate(f Filters, now time.Time) func(appointment.Record) bool {
	loc := now.Location()
	switch f.Date {
	case DateAll, "":
		return func(appointment.Record) bool { return true }
	case DateToday:
		return startPredicate(loc, func(t time.Time) bool {
			return dateutil.SameDay(t, now)
		})
	case DateWeek:
		week := dateutil.StartOfWeek(now)
		return startPredicate(loc, func(t time.Time) bool {
			return dateutil.StartOfWeek(t).Equal(week)
		})
	case DateMonth:
		return startPredicate(loc, func(t time.Time) bool {
			return t.Year() == now.Year() && t.Month() == now.Month()
		})
	case DateCustom:
		if f.Range.Start == "" || f.Range.End == "" {
			return func(appointment.Record) bool { return true }
		}
		from, fromOK := lowerBound(f.Range.Start, loc)
		until, untilOK := upperBound(f.Range.End, loc)
		if !fromOK || !untilOK {
			return func(appointment.Record) bool { return false }
		}
		return startPredicate(loc, func(t time.Time) bool {
			return !t.Before(from) && t.Before(until)
		})
	default:
		return func(appointment.Record) bool { return false }
	}
}

// startPredicate lifts a predicate on the start time into one on records.
// Records whose date does not parse never match.
func startPredicate(loc *time.Location, pred func(time.Time) bool) func(appointment.Record) bool {
	return func(r appointment.Record) bool {
		t, err := r.Start()
		if err != nil {
			return false
		}
		return pred(t.In(loc))
	}
}

// lowerBound is inclusive. A bare date starts at its midnight.
func lowerBound(raw string, loc *time.Location) (time.Time, bool) {
	if appointment.IsDateOnly(raw) {
		t, err := time.ParseInLocation(dateutil.KeyLayout, strings.TrimSpace(raw), loc)
		return t, err == nil
	}
	t, err := appointment.ParseDate(raw)
	return t, err == nil
}

// upperBound is exclusive. A bare date covers its whole day; a date-time is
// moved one nanosecond forward so it stays inclusive.
func upperBound(raw string, loc *time.Location) (time.Time, bool) {
	if appointment.IsDateOnly(raw) {
		t, err := time.ParseInLocation(dateutil.KeyLayout, strings.TrimSpace(raw), loc)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc), true
	}
	t, err := appointment.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(time.Nanosecond), true
}

// SortByStart orders records by parsed start time, keeping input order for
// equal times. Records with malformed dates go last, in input order.
func SortByStart(records []appointment.Record) {
	type keyed struct {
		at time.Time
		ok bool
	}
	keys := make([]keyed, len(records))
	idx := make([]int, len(records))
	for i := range records {
		idx[i] = i
		t, err := records[i].Start()
		keys[i] = keyed{at: t, ok: err == nil}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return ka.at.Before(kb.at)
	})
	sorted := make([]appointment.Record, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}
