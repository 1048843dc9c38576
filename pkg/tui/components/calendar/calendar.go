// Package calendar renders the four week appointment grid.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/viewmodel"
)

// Options controls calendar styling.
type Options struct {
	HeaderStyle     lipgloss.Style
	OtherMonthStyle lipgloss.Style
	DayStyle        lipgloss.Style
	BusyStyle       lipgloss.Style
	TodayStyle      lipgloss.Style
	SelectedStyle   lipgloss.Style
	ShowHeader      bool
}

const cellWidth = 6 // "31 •3"

// Render produces the multi-line grid. selected is a cell index, or -1.
func Render(buckets []viewmodel.DayBucket, selected int, opts Options) string {
	var lines []string
	if opts.ShowHeader {
		cells := make([]string, len(calendar.WeekdayHeader))
		for i, d := range calendar.WeekdayHeader {
			cells[i] = opts.HeaderStyle.Render(fmt.Sprintf("%-*s", cellWidth, d))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	for row, week := range calendar.Weeks(buckets) {
		cells := make([]string, 0, len(week))
		for col, b := range week {
			cells = append(cells, renderDay(b, row*7+col == selected, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(b viewmodel.DayBucket, selected bool, opts Options) string {
	text := fmt.Sprintf("%2d", b.Day)
	if n := len(b.Appointments); n > 0 {
		text = fmt.Sprintf("%2d •%d", b.Day, n)
	}
	text = fmt.Sprintf("%-*s", cellWidth, text)

	style := opts.DayStyle
	switch {
	case !b.IsCurrentMonth:
		style = opts.OtherMonthStyle
	case len(b.Appointments) > 0:
		style = opts.BusyStyle
	}
	if b.IsToday {
		style = style.Copy().Inherit(opts.TodayStyle)
	}
	if selected {
		style = style.Copy().Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

// Move returns the cell index reached from i by delta, clamped to the grid.
func Move(i, delta, cells int) int {
	i += delta
	if i < 0 {
		return 0
	}
	if i >= cells {
		return cells - 1
	}
	return i
}
