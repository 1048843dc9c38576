package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/viewmodel"
)

// PrettyPrint renders appointments for a terminal.
type PrettyPrint struct {
	ShowID bool
	// NotesWidth truncates notes in tables. Zero uses 40.
	NotesWidth int
	Format     dateutil.Formatter
	Out        io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) notesWidth() uint {
	if pp.NotesWidth <= 0 {
		return 40
	}
	return uint(pp.NotesWidth)
}

var statusColors = map[appointment.Status]*color.Color{
	appointment.StatusPending:     color.New(color.FgYellow),
	appointment.StatusConfirmed:   color.New(color.FgBlue),
	appointment.StatusCompleted:   color.New(color.FgGreen),
	appointment.StatusCancelled:   color.New(color.FgRed),
	appointment.StatusNoShow:      color.New(color.FgHiBlack),
	appointment.StatusRescheduled: color.New(color.FgMagenta),
	appointment.StatusWaiting:     color.New(color.FgHiYellow),
	appointment.StatusInProgress:  color.New(color.FgCyan, color.Bold),
}

// StatusColor returns the color associated with a status.
func StatusColor(s appointment.Status) *color.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return color.New()
}

// Status renders a colored status label.
func Status(s appointment.Status) string {
	return StatusColor(s).Sprint(s.Label())
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " appointment")
	default:
		_, _ = c.Fprintln(pp.out(), " appointments")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) table(records []appointment.Record, withDate bool) *uitable.Table {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	if withDate {
		header = append(header, bold.Sprint("Date"))
	}
	header = append(header, bold.Sprint("Time"), bold.Sprint("Patient"), bold.Sprint("Type"), bold.Sprint("Status"), bold.Sprint("Notes"))
	tbl.AddRow(header...)

	for i := range records {
		r := &records[i]
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, id.Sprint(r.ID))
		}
		if withDate {
			row = append(row, pp.Format.Date(r.Date))
		}
		span := pp.Format.Time(r.Date) + " - " + pp.Format.EndTime(r.Date, r.Minutes())
		notes := truncate.StringWithTail(strings.ReplaceAll(r.Notes, "\n", " "), pp.notesWidth(), "…")
		row = append(row, span, r.PatientName(), r.TypeLabel(), Status(r.Status), faint.Sprint(notes))
		tbl.AddRow(row...)
	}
	return tbl
}

// List prints the filtered list view.
func (pp *PrettyPrint) List(records []appointment.Record) {
	pp.TitleWithCount("Appointments", len(records))
	if len(records) == 0 {
		pp.none()
		return
	}
	_, _ = fmt.Fprintln(pp.out(), pp.table(records, true))
	pp.NewLine()
}

// Agenda prints one section per day.
func (pp *PrettyPrint) Agenda(agenda viewmodel.Agenda) {
	if len(agenda.Days) == 0 {
		pp.Title("Agenda")
		pp.none()
	}
	for _, day := range agenda.Days {
		pp.TitleWithCount(pp.Format.DisplayDay(day.Key), len(day.Appointments))
		_, _ = fmt.Fprintln(pp.out(), pp.table(day.Appointments, false))
		pp.NewLine()
	}
	if agenda.Skipped > 0 {
		w := color.New(color.FgYellow, color.Italic)
		_, _ = w.Fprintf(pp.out(), "%d appointment(s) with an invalid date are not shown\n\n", agenda.Skipped)
	}
}

// Details prints one appointment in full.
func (pp *PrettyPrint) Details(r appointment.Record) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	pp.Title(r.PatientName())
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), r.ID)
	tbl.AddRow(bold.Sprint("Date"), pp.Format.Date(r.Date))
	tbl.AddRow(bold.Sprint("Time"), pp.Format.Time(r.Date)+" - "+pp.Format.EndTime(r.Date, r.Minutes()))
	tbl.AddRow(bold.Sprint("Duration"), dateutil.FormatDuration(r.Minutes()))
	tbl.AddRow(bold.Sprint("Type"), r.TypeLabel())
	tbl.AddRow(bold.Sprint("Status"), Status(r.Status))
	if r.Patient != nil {
		tbl.AddRow(bold.Sprint("Initials"), dateutil.Initials(r.Patient.FirstName, r.Patient.LastName))
		if r.Patient.Email != "" {
			tbl.AddRow(bold.Sprint("Email"), r.Patient.Email)
		}
		if r.Patient.Phone != "" {
			tbl.AddRow(bold.Sprint("Phone"), r.Patient.Phone)
		}
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if strings.TrimSpace(r.Notes) != "" {
		pp.NewLine()
		_, _ = bold.Fprintln(pp.out(), "Notes")
		_, _ = faint.Fprintln(pp.out(), wordwrap.String(r.Notes, 72))
	}
	pp.NewLine()
}

// Stats prints per-status counts.
func (pp *PrettyPrint) Stats(s appointment.Stats) {
	bold := color.New(color.Bold)
	pp.TitleWithCount("Summary", s.Total)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, st := range appointment.Statuses() {
		tbl.AddRow(Status(st), s.ByStatus[st])
	}
	tbl.AddRow(bold.Sprint("Total"), s.Total)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Legend prints the status lifecycle: every state, its wire value and the
// states it may move to.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Status"), bold.Sprint("Value"), bold.Sprint("Moves to"))
	for _, from := range appointment.Statuses() {
		var to []string
		for _, candidate := range appointment.Statuses() {
			if candidate != from && appointment.CanTransition(from, candidate) {
				to = append(to, string(candidate))
			}
		}
		tbl.AddRow(Status(from), faint.Sprint(string(from)), strings.Join(to, ", "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
