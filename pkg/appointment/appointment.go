// Package appointment defines the appointment record as the client sees it
// after the data layer has expanded the patient relation.
package appointment

import (
	"strings"
	"time"
)

const (
	// DefaultDuration is used when a record carries no positive duration.
	DefaultDuration = 30
	// DefaultType is shown when a record has no type label.
	DefaultType = "General"
	// PatientPlaceholder stands in for a patient relation that is not expanded.
	PatientPlaceholder = "Loading Patient..."
)

// Patient is the expanded patient relation of an appointment.
type Patient struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// FullName joins first and last name the way every view prints it.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Record is a single appointment in the snapshot.
type Record struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Duration  int      `json:"duration,omitempty"`
	Type      string   `json:"type,omitempty"`
	Status    Status   `json:"status"`
	Notes     string   `json:"notes,omitempty"`
	PatientID string   `json:"patientId,omitempty"`
	Patient   *Patient `json:"patient,omitempty"`
}

// Minutes returns the duration, falling back to DefaultDuration.
func (r *Record) Minutes() int {
	if r.Duration <= 0 {
		return DefaultDuration
	}
	return r.Duration
}

// TypeLabel returns the type, falling back to DefaultType.
func (r *Record) TypeLabel() string {
	if strings.TrimSpace(r.Type) == "" {
		return DefaultType
	}
	return r.Type
}

// PatientName returns the patient's full name or PatientPlaceholder while the
// relation is not expanded.
func (r *Record) PatientName() string {
	if r.Patient == nil {
		return PatientPlaceholder
	}
	return r.Patient.FullName()
}

// Start parses the start date. The error is non-nil for malformed dates.
func (r *Record) Start() (time.Time, error) {
	return ParseDate(r.Date)
}

// Clone returns a deep copy so callers can hand records across layers
// without sharing the patient pointer.
func (r Record) Clone() Record {
	if r.Patient != nil {
		p := *r.Patient
		r.Patient = &p
	}
	return r
}

// CloneAll deep-copies a slice of records.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Normalize coerces a record received from a collaborator into a usable
// shape. It reports whether the status had to be replaced.
func (r *Record) Normalize() (replaced bool) {
	if !r.Status.Valid() {
		r.Status = StatusPending
		replaced = true
	}
	return replaced
}
