// Package filter narrows an appointment snapshot by search text, date bucket
// and status, and orders the result by start time.
package filter

import (
	"fmt"
	"strings"

	"tableflip.dev/clinic/pkg/appointment"
)

// DateFilter selects a date bucket relative to the current day.
type DateFilter string

const (
	DateAll    DateFilter = "all"
	DateToday  DateFilter = "today"
	DateWeek   DateFilter = "week"
	DateMonth  DateFilter = "month"
	DateCustom DateFilter = "custom"
)

// DateFilters returns the date filters in cycling order.
func DateFilters() []DateFilter {
	return []DateFilter{DateAll, DateToday, DateWeek, DateMonth, DateCustom}
}

// ParseDateFilter converts user input into a DateFilter. Empty means all.
func ParseDateFilter(raw string) (DateFilter, error) {
	d := DateFilter(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DateAll, nil
	}
	for _, candidate := range DateFilters() {
		if candidate == d {
			return candidate, nil
		}
	}
	return DateAll, fmt.Errorf("filter: unknown date filter %q", raw)
}

// StatusFilter is either StatusAll or one of the appointment statuses.
type StatusFilter string

// StatusAll disables the status predicate.
const StatusAll StatusFilter = "all"

// ForStatus builds the filter selecting a single status.
func ForStatus(s appointment.Status) StatusFilter {
	return StatusFilter(s)
}

// ParseStatusFilter accepts "all" (or empty) and anything
// appointment.ParseStatus accepts.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, string(StatusAll)) {
		return StatusAll, nil
	}
	s, err := appointment.ParseStatus(trimmed)
	if err != nil {
		return StatusAll, err
	}
	return ForStatus(s), nil
}

// Status returns the selected status, or false for StatusAll.
func (s StatusFilter) Status() (appointment.Status, bool) {
	if s == StatusAll || s == "" {
		return "", false
	}
	return appointment.Status(s), true
}

// Label is the display name of the filter.
func (s StatusFilter) Label() string {
	if st, ok := s.Status(); ok {
		return st.Label()
	}
	return "All"
}

// StatusFilters returns StatusAll followed by every status.
func StatusFilters() []StatusFilter {
	out := []StatusFilter{StatusAll}
	for _, s := range appointment.Statuses() {
		out = append(out, ForStatus(s))
	}
	return out
}

// ViewMode selects which projection the UI renders.
type ViewMode string

const (
	ModeList     ViewMode = "list"
	ModeAgenda   ViewMode = "agenda"
	ModeCalendar ViewMode = "calendar"
)

// ViewModes returns the view modes in tab order.
func ViewModes() []ViewMode {
	return []ViewMode{ModeList, ModeAgenda, ModeCalendar}
}

// ParseViewMode converts user input into a ViewMode. Empty means list.
func ParseViewMode(raw string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return ModeList, nil
	}
	for _, candidate := range ViewModes() {
		if candidate == m {
			return candidate, nil
		}
	}
	return ModeList, fmt.Errorf("filter: unknown view mode %q", raw)
}

// DateRange bounds the custom date filter. Both ends are ISO dates or
// date-times; an empty end disables the range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filters is the user-controlled view state the engine reads.
type Filters struct {
	SearchQuery string       `json:"searchQuery"`
	Date        DateFilter   `json:"dateFilter"`
	Range       DateRange    `json:"customDateRange"`
	Status      StatusFilter `json:"statusFilter"`
	Mode        ViewMode     `json:"viewMode"`
}

// Default returns filters that admit everything in list mode.
func Default() Filters {
	return Filters{Date: DateAll, Status: StatusAll, Mode: ModeList}
}
