package app

import (
	"context"
	"time"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/filter"
	"tableflip.dev/clinic/pkg/viewmodel"
)

// ReportResult summarizes the appointments that started inside a window.
type ReportResult struct {
	Since time.Time            `json:"since"`
	Until time.Time            `json:"until"`
	Days  []viewmodel.DayGroup `json:"days"`
	Stats appointment.Stats    `json:"stats"`
	// Outstanding lists appointments in the window that are already over but
	// were never resolved to a final status.
	Outstanding []appointment.Record `json:"outstanding"`
}

// Report fetches the snapshot and summarizes the appointments starting
// between since and until inclusive, evaluated against now.
func (s *Service) Report(ctx context.Context, since, until, now time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Fetch(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	return BuildReport(all, since, until, now), nil
}

// BuildReport is Report over an already fetched snapshot.
func BuildReport(all []appointment.Record, since, until, now time.Time) ReportResult {
	inWindow := make([]appointment.Record, 0, len(all))
	for _, r := range all {
		start, err := r.Start()
		if err != nil {
			continue
		}
		if start.Before(since) || start.After(until) {
			continue
		}
		inWindow = append(inWindow, r)
	}
	filter.SortByStart(inWindow)

	return ReportResult{
		Since:       since,
		Until:       until,
		Days:        viewmodel.GroupByDate(inWindow, until.Location()).Days,
		Stats:       appointment.Summarize(inWindow),
		Outstanding: Outstanding(inWindow, now),
	}
}

// Outstanding returns the records whose end time is before now while their
// status still describes an open visit.
func Outstanding(records []appointment.Record, now time.Time) []appointment.Record {
	out := []appointment.Record{}
	for _, r := range records {
		if !isOpen(r.Status) {
			continue
		}
		start, err := r.Start()
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(r.Minutes()) * time.Minute)
		if end.Before(now) {
			out = append(out, r)
		}
	}
	return out
}

func isOpen(s appointment.Status) bool {
	switch s {
	case appointment.StatusPending, appointment.StatusConfirmed, appointment.StatusWaiting, appointment.StatusInProgress:
		return true
	}
	return false
}
