// Package calendar builds the fixed four-week grid shown by the calendar view.
package calendar

import (
	"time"

	"tableflip.dev/clinic/pkg/dateutil"
)

// GridDays is the number of cells in a grid: four full weeks.
const GridDays = 28

// DayCell is a single cell of the grid.
type DayCell struct {
	Day            int       `json:"day"`
	FullDate       string    `json:"fullDate"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	Date           time.Time `json:"-"`
}

// Generate returns GridDays consecutive cells starting at the Sunday on or
// before ref. The window is fixed: it does not stretch to cover the whole
// month, so late days of a month can fall outside it.
//
// IsCurrentMonth compares against ref's month; IsToday compares against now.
// Both are evaluated in ref's location.
func Generate(ref, now time.Time) []DayCell {
	start := dateutil.StartOfWeek(ref)
	now = now.In(ref.Location())
	cells := make([]DayCell, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		// Adding days through time.Date keeps midnight across DST shifts.
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, start.Location())
		cells = append(cells, DayCell{
			Day:            d.Day(),
			FullDate:       d.Format(dateutil.KeyLayout),
			IsCurrentMonth: d.Month() == ref.Month() && d.Year() == ref.Year(),
			IsToday:        dateutil.SameDay(d, now),
			Date:           d,
		})
	}
	return cells
}

// Weeks splits a grid, or anything laid out along it, into rows of seven.
func Weeks[T any](cells []T) [][]T {
	var rows [][]T
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[i:end])
	}
	return rows
}

// WeekdayHeader is the column header of the grid.
var WeekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
