package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/filter"
	calview "tableflip.dev/clinic/pkg/tui/components/calendar"
)

const (
	detailsWidth = 38
	notesWidth   = 32
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		return m.help.View()
	}
	sections := []string{m.viewHeader()}
	switch m.input {
	case modeSearch:
		sections = append(sections, m.search.View())
	case modeRange:
		sections = append(sections, m.rangeIn.View())
	default:
		if q := m.store.Filters().SearchQuery; q != "" {
			sections = append(sections, m.theme.Header.Filters.Render("search: "+q))
		}
	}

	body := m.viewBody()
	if m.store.DetailsOpen() {
		if sel, ok := m.store.Selected(); ok {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.viewDetails(sel))
		}
	}
	sections = append(sections, "", body, "", m.viewFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) viewHeader() string {
	f := m.store.Filters()
	var tabs []string
	for _, mode := range filter.ViewModes() {
		style := m.theme.Header.Tab
		if mode == f.Mode {
			style = m.theme.Header.ActiveTab
		}
		tabs = append(tabs, style.Render(string(mode)))
	}

	summary := fmt.Sprintf("date: %s  status: %s", f.Date, f.Status.Label())
	if f.Date == filter.DateCustom {
		summary = fmt.Sprintf("date: %s..%s  status: %s", f.Range.Start, f.Range.End, f.Status.Label())
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
		"  ",
		m.theme.Header.Filters.Render(summary),
	)
}

func (m *Model) viewBody() string {
	if m.store.Loading() && len(m.store.Appointments()) == 0 {
		return m.theme.List.Muted.Render("Loading appointments...")
	}
	switch m.store.Filters().Mode {
	case filter.ModeAgenda:
		return m.viewAgenda()
	case filter.ModeCalendar:
		return m.viewCalendar()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	rows := m.store.Filtered()
	if len(rows) == 0 {
		return m.theme.List.Muted.Render("No appointments match the current filters.")
	}
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		lines = append(lines, m.row(r, i == m.cursor, true))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewAgenda() string {
	agenda := m.store.ByDate()
	if len(agenda.Days) == 0 {
		return m.theme.List.Muted.Render("No appointments match the current filters.")
	}
	format := m.store.Formatter()
	var lines []string
	i := 0
	for _, day := range agenda.Days {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.theme.List.Day.Render(format.DisplayDay(day.Key)))
		for _, r := range day.Appointments {
			lines = append(lines, m.row(r, i == m.cursor, false))
			i++
		}
	}
	if agenda.Skipped > 0 {
		lines = append(lines, "", m.theme.List.Muted.Render(fmt.Sprintf("%d with unreadable dates not shown", agenda.Skipped)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewCalendar() string {
	buckets := m.store.Calendar(m.calRef)
	grid := calview.Render(buckets, m.calCursor, calview.Options{
		HeaderStyle:     m.theme.Calendar.Header,
		OtherMonthStyle: m.theme.Calendar.OtherMonth,
		DayStyle:        m.theme.Calendar.Day,
		BusyStyle:       m.theme.Calendar.Busy,
		TodayStyle:      m.theme.Calendar.Today,
		SelectedStyle:   m.theme.Calendar.Selected,
		ShowHeader:      true,
	})
	title := m.theme.Panel.Title.Render(m.calRef.Format("January 2006"))
	out := []string{title, grid}

	if m.calCursor < len(buckets) {
		b := buckets[m.calCursor]
		out = append(out, "", m.theme.List.Day.Render(m.store.Formatter().DisplayDay(b.FullDate)))
		if len(b.Appointments) == 0 {
			out = append(out, m.theme.List.Muted.Render("Nothing booked."))
		}
		for i, r := range b.Appointments {
			out = append(out, m.row(r, i == 0, false))
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) row(r appointment.Record, selected, withDate bool) string {
	format := m.store.Formatter()
	when := format.Time(r.Date)
	if withDate {
		when = format.Date(r.Date) + " " + when
	}
	notes := truncate.StringWithTail(strings.ReplaceAll(r.Notes, "\n", " "), notesWidth, "…")
	line := fmt.Sprintf("%-24s %-22s %-16s %s",
		when,
		truncate.StringWithTail(r.PatientName(), 22, "…"),
		truncate.StringWithTail(r.TypeLabel(), 16, "…"),
		notes,
	)
	badge := m.theme.StatusBadge(r.Status)
	if selected {
		return m.theme.List.Selected.Render(line) + " " + badge
	}
	return m.theme.List.Row.Render(line) + " " + badge
}

func (m *Model) viewDetails(r appointment.Record) string {
	format := m.store.Formatter()
	label := m.theme.Panel.Label.Render
	lines := []string{
		label("When") + format.Date(r.Date),
		label("Time") + format.Time(r.Date) + " - " + format.EndTime(r.Date, r.Minutes()),
		label("Length") + dateutil.FormatDuration(r.Minutes()),
		label("Type") + r.TypeLabel(),
		label("Status") + m.theme.StatusBadge(r.Status),
	}
	if r.Patient != nil {
		if r.Patient.Email != "" {
			lines = append(lines, label("Email")+r.Patient.Email)
		}
		if r.Patient.Phone != "" {
			lines = append(lines, label("Phone")+r.Patient.Phone)
		}
	}
	if r.Notes != "" {
		lines = append(lines, "", wordwrap.String(r.Notes, detailsWidth-4))
	}

	lines = append(lines, "")
	for i, s := range appointment.Statuses() {
		marker := " "
		if s == r.Status {
			marker = "•"
		}
		lines = append(lines, fmt.Sprintf("%s %d %s", marker, i+1, m.theme.StatusBadge(s)))
	}
	if m.pending {
		lines = append(lines, "", m.theme.List.Muted.Render("updating..."))
	}
	if err := m.store.UpdateErr(); err != nil {
		lines = append(lines, "", m.theme.Footer.Error.Render(wordwrap.String(err.Error(), detailsWidth-4)))
	}

	m.details.SetContent(r.PatientName(), lines)
	m.details.SetWidth(detailsWidth)
	view, _ := m.details.View()
	return view
}

func (m *Model) viewFooter() string {
	var status string
	switch {
	case m.store.Err() != nil:
		status = m.theme.Footer.Error.Render("fetch failed: "+m.store.Err().Error()) + m.theme.Footer.Help.Render("  (r to retry)")
	case m.store.Loading():
		status = m.theme.Footer.Status.Render("refreshing...")
	case m.flash != "":
		status = m.theme.Footer.Status.Render(m.flash)
	default:
		s := m.store.Stats()
		status = m.theme.Footer.Status.Render(fmt.Sprintf("%d shown · %d completed · %d cancelled · %d no-show",
			s.Total, s.Completed(), s.Cancelled(), s.NoShows()))
	}

	help := "? help  / search  c range  tab view  d date  s status  x reset  enter open  r refresh  q quit"
	switch {
	case m.input != modeBrowse:
		help = "enter apply  esc cancel"
	case m.store.DetailsOpen():
		help = "1-8 set status  esc close  q quit"
	case m.store.Filters().Mode == filter.ModeCalendar:
		help = "arrows move  [ ] shift 4 weeks  t today  enter open  tab view  q quit"
	}
	return status + "\n" + m.theme.Footer.Help.Render(help)
}
