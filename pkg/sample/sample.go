// Package sample builds a small appointment book for demos and tests.
package sample

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/clinic/pkg/appointment"
)

type seed struct {
	dayOffset int
	hour, min int
	duration  int
	kind      string
	status    appointment.Status
	first     string
	last      string
	notes     string
}

var seeds = []seed{
	{-6, 9, 0, 45, "Check-up/Routine Exam", appointment.StatusCompleted, "Ada", "Lovelace", ""},
	{-6, 11, 30, 30, "Cleaning/Hygiene", appointment.StatusNoShow, "Alan", "Turing", "second missed visit"},
	{-3, 14, 0, 60, "Filling", appointment.StatusCompleted, "Grace", "Hopper", "upper left molar"},
	{-1, 10, 0, 30, "Consultation", appointment.StatusConfirmed, "Edsger", "Dijkstra", ""},
	{0, 8, 30, 30, "Cleaning/Hygiene", appointment.StatusWaiting, "Barbara", "Liskov", ""},
	{0, 9, 15, 90, "Root Canal", appointment.StatusInProgress, "Ken", "Thompson", "numbing takes a while"},
	{0, 13, 0, 45, "Orthodontics", appointment.StatusPending, "Margaret", "Hamilton", ""},
	{1, 10, 30, 30, "Check-up/Routine Exam", appointment.StatusConfirmed, "Dennis", "Ritchie", ""},
	{2, 15, 0, 60, "Crown", appointment.StatusRescheduled, "Frances", "Allen", "moved from last week"},
	{5, 9, 0, 30, "Emergency Visit", appointment.StatusCancelled, "Rob", "Pike", "resolved by phone"},
	{9, 11, 0, 45, "Teeth Whitening", appointment.StatusPending, "Radia", "Perlman", ""},
	{16, 16, 30, 30, "X-rays/Radiography", appointment.StatusPending, "Leslie", "Lamport", ""},
}

// Appointments returns a fixed book of appointments spread around now.
func Appointments(now time.Time) []appointment.Record {
	y, m, d := now.Date()
	out := make([]appointment.Record, 0, len(seeds))
	for i, s := range seeds {
		start := time.Date(y, m, d+s.dayOffset, s.hour, s.min, 0, 0, now.Location())
		patientID := fmt.Sprintf("patient%03d", i+1)
		out = append(out, appointment.Record{
			ID:        fmt.Sprintf("sample%03d", i+1),
			Date:      start.Format(time.RFC3339),
			Duration:  s.duration,
			Type:      s.kind,
			Status:    s.status,
			Notes:     s.notes,
			PatientID: patientID,
			Patient: &appointment.Patient{
				ID:        patientID,
				FirstName: s.first,
				LastName:  s.last,
				Email:     fmt.Sprintf("%s.%s@example.com", strings.ToLower(s.first), strings.ToLower(s.last)),
			},
		})
	}
	return out
}
