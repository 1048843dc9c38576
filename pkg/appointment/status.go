package appointment

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of an appointment. Values match the wire
// representation used by the document store.
type Status string

const (
	// StatusPending is the default state of a booked appointment.
	StatusPending Status = "pending"
	// StatusConfirmed means the patient confirmed attendance.
	StatusConfirmed Status = "confirmed"
	// StatusCompleted means the visit took place.
	StatusCompleted Status = "completed"
	// StatusCancelled means the slot was released.
	StatusCancelled Status = "cancelled"
	// StatusNoShow means the patient did not turn up.
	StatusNoShow Status = "no_show"
	// StatusRescheduled means the visit moved to another slot.
	StatusRescheduled Status = "rescheduled"
	// StatusWaiting means the patient is in the waiting room.
	StatusWaiting Status = "waiting"
	// StatusInProgress means the patient is in the chair.
	StatusInProgress Status = "in_progress"
)

// ErrInvalidStatus is returned when a value is not one of the known statuses.
var ErrInvalidStatus = errors.New("appointment: invalid status")

var statusLabels = map[Status]string{
	StatusPending:     "Pending",
	StatusConfirmed:   "Confirmed",
	StatusCompleted:   "Completed",
	StatusCancelled:   "Cancelled",
	StatusNoShow:      "No Show",
	StatusRescheduled: "Rescheduled",
	StatusWaiting:     "Waiting",
	StatusInProgress:  "In Progress",
}

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusCompleted,
		StatusCancelled,
		StatusNoShow,
		StatusRescheduled,
		StatusWaiting,
		StatusInProgress,
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts the wire value or the label, ignoring case and the
// separators between words ("NoShow", "no-show" and "No Show" all parse).
func ParseStatus(raw string) (Status, error) {
	want := normalizeStatus(raw)
	if want == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidStatus)
	}
	for _, s := range Statuses() {
		if normalizeStatus(string(s)) == want || normalizeStatus(s.Label()) == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func normalizeStatus(raw string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(raw)))
}

// CanTransition reports whether an appointment at from may move to to.
//
// The table is unrestricted: any valid status may follow any other, including
// moving a completed visit back to pending. Only unknown statuses are refused.
func CanTransition(from, to Status) bool {
	return from.Valid() && to.Valid()
}

// ValidateTransition is CanTransition with an error describing the refusal.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !from.Valid() {
		return fmt.Errorf("%w: current status %q", ErrInvalidStatus, from)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("appointment: transition %s -> %s not allowed", from, to)
	}
	return nil
}
