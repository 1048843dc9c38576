package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/filter"
	calview "tableflip.dev/clinic/pkg/tui/components/calendar"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.store.SetError(msg.err)
			return m, nil
		}
		m.store.SetAppointments(msg.records)
		m.clampCursor()
		return m, nil

	case statusResultMsg:
		m.pending = false
		if msg.err != nil {
			m.store.SetUpdateError(msg.err)
			return m, nil
		}
		m.store.SetUpdateError(nil)
		m.store.CloseDetails()
		m.flash = fmt.Sprintf("%s is now %s", msg.record.PatientName(), msg.record.Status.Label())
		m.store.SetLoading(true)
		return m, m.fetch()

	case searchSettledMsg:
		// A newer keystroke may have landed after the timer fired.
		if msg.query == m.search.Value() && msg.query != m.store.Filters().SearchQuery {
			m.store.SetSearchQuery(msg.query)
			m.cursor = 0
		}
		return m, nil

	case cacheEventMsg:
		m.svc.Log.Debug().Str("event", msg.event.Type.String()).Str("day", msg.event.Day).Msg("cache changed")
		return m, tea.Batch(m.fetch(), m.waitForCache())

	case cacheClosedMsg:
		m.watch = nil
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		switch m.input {
		case modeSearch:
			return m.updateSearch(msg)
		case modeRange:
			return m.updateRange(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.showHelp = false
		return m, nil
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	}
	return m, m.help.Update(msg)
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.input = modeBrowse
		m.search.Blur()
		// Apply immediately instead of waiting out the debounce window.
		m.debouncer.Flush()
		m.store.SetSearchQuery(m.search.Value())
		m.cursor = 0
		return m, nil
	case tea.KeyEsc:
		m.input = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.debouncer.Flush()
		m.store.SetSearchQuery("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != before {
		send := m.send
		m.debouncer.Call(func() { send(searchSettledMsg{query: q}) })
	}
	return m, cmd
}

func (m *Model) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		start, end, ok := parseRange(m.rangeIn.Value())
		if !ok {
			m.flash = "range must look like 2024-03-01..2024-03-31"
			return m, nil
		}
		m.input = modeBrowse
		m.rangeIn.Blur()
		m.store.SetCustomRange(start, end)
		_ = m.store.SetDateFilter(filter.DateCustom)
		m.cursor = 0
		return m, nil
	case tea.KeyEsc:
		m.input = modeBrowse
		m.rangeIn.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.rangeIn, cmd = m.rangeIn.Update(msg)
	return m, cmd
}

// parseRange splits "start..end". Either side may be empty, which leaves the
// range inactive.
func parseRange(raw string) (string, string, bool) {
	start, end, ok := strings.Cut(strings.TrimSpace(raw), "..")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(start), strings.TrimSpace(end), true
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.store.DetailsOpen() {
		if cmd, handled := m.updateDetails(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "ctrl+c", "q":
		m.Close()
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "/":
		m.input = modeSearch
		m.search.Focus()
		return m, textinput.Blink
	case "c":
		m.input = modeRange
		r := m.store.Filters().Range
		if r.Start != "" || r.End != "" {
			m.rangeIn.SetValue(r.Start + ".." + r.End)
		}
		m.rangeIn.Focus()
		return m, textinput.Blink
	case "tab":
		m.cycleMode(1)
	case "shift+tab":
		m.cycleMode(-1)
	case "d":
		m.cycleDate()
	case "s":
		m.cycleStatus()
	case "x":
		m.store.ResetFilters()
		m.search.SetValue("")
		m.debouncer.Flush()
		m.cursor = 0
		m.flash = "filters reset"
	case "r":
		m.store.SetLoading(true)
		m.flash = ""
		return m, m.fetch()
	case "up", "k":
		m.move(-1, -7)
	case "down", "j":
		m.move(1, 7)
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "[":
		m.shiftCalendar(-calendar.GridDays)
	case "]":
		m.shiftCalendar(calendar.GridDays)
	case "t":
		m.calRef = m.store.Now()
		m.calCursor = m.todayCell()
	case "enter":
		if r, ok := m.current(); ok {
			m.store.Select(r.ID)
		}
	}
	return m, nil
}

// updateDetails handles keys while the details pane is open. Number keys
// 1-8 pick a status in legend order.
func (m *Model) updateDetails(key string) (tea.Cmd, bool) {
	switch key {
	case "esc", "backspace":
		m.store.CloseDetails()
		return nil, true
	}
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil, false
	}
	statuses := appointment.Statuses()
	i := int(key[0] - '1')
	if i >= len(statuses) {
		return nil, true
	}
	sel, ok := m.store.Selected()
	if !ok || m.pending {
		return nil, true
	}
	return m.submitStatus(sel, statuses[i]), true
}

func (m *Model) submitStatus(r appointment.Record, to appointment.Status) tea.Cmd {
	m.pending = true
	m.store.SetUpdateError(nil)
	ctx, svc := m.ctx, m.svc
	id, from := r.ID, r.Status
	return func() tea.Msg {
		updated, err := svc.SubmitStatus(ctx, id, from, to)
		return statusResultMsg{record: updated, err: err}
	}
}

func (m *Model) cycleMode(step int) {
	modes := filter.ViewModes()
	cur := indexOf(len(modes), func(i int) bool { return modes[i] == m.store.Filters().Mode })
	_ = m.store.SetViewMode(modes[wrap(cur+step, len(modes))])
	m.cursor = 0
}

func (m *Model) cycleDate() {
	dates := filter.DateFilters()
	cur := indexOf(len(dates), func(i int) bool { return dates[i] == m.store.Filters().Date })
	next := dates[wrap(cur+1, len(dates))]
	// Custom is entered through the range prompt.
	if next == filter.DateCustom {
		next = dates[wrap(cur+2, len(dates))]
	}
	_ = m.store.SetDateFilter(next)
	m.cursor = 0
}

func (m *Model) cycleStatus() {
	all := filter.StatusFilters()
	cur := indexOf(len(all), func(i int) bool { return all[i] == m.store.Filters().Status })
	_ = m.store.SetStatusFilter(all[wrap(cur+1, len(all))])
	m.cursor = 0
}

func (m *Model) move(listDelta, calDelta int) {
	if m.store.Filters().Mode == filter.ModeCalendar {
		m.calCursor = calview.Move(m.calCursor, calDelta, calendar.GridDays)
		return
	}
	m.cursor += listDelta
	m.clampCursor()
}

func (m *Model) moveDay(delta int) {
	if m.store.Filters().Mode == filter.ModeCalendar {
		m.calCursor = calview.Move(m.calCursor, delta, calendar.GridDays)
	}
}

func (m *Model) shiftCalendar(days int) {
	if m.store.Filters().Mode != filter.ModeCalendar {
		return
	}
	m.calRef = m.calRef.AddDate(0, 0, days)
	m.calCursor = 0
}

func (m *Model) todayCell() int {
	buckets := m.store.Calendar(m.calRef)
	for i, b := range buckets {
		if b.IsToday {
			return i
		}
	}
	return 0
}

// rows is the ordered list the cursor walks in list and agenda modes.
func (m *Model) rows() []appointment.Record {
	if m.store.Filters().Mode == filter.ModeAgenda {
		var out []appointment.Record
		for _, d := range m.store.ByDate().Days {
			out = append(out, d.Appointments...)
		}
		return out
	}
	return m.store.Filtered()
}

func (m *Model) current() (appointment.Record, bool) {
	if m.store.Filters().Mode == filter.ModeCalendar {
		buckets := m.store.Calendar(m.calRef)
		if m.calCursor < len(buckets) && len(buckets[m.calCursor].Appointments) > 0 {
			return buckets[m.calCursor].Appointments[0], true
		}
		return appointment.Record{}, false
	}
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return appointment.Record{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func indexOf(n int, match func(int) bool) int {
	for i := 0; i < n; i++ {
		if match(i) {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
