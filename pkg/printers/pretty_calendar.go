package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/clinic/pkg/calendar"
	"tableflip.dev/clinic/pkg/viewmodel"
)

const cellWidth = len("31 (12)") // a day with a two digit count

// Calendar prints the 4-week grid with a per-day appointment count, then the
// appointments of every day that has any.
func (pp *PrettyPrint) Calendar(ref time.Time, buckets []viewmodel.DayBucket) {
	title := ref.Format("January 2006")
	mid := (cellWidth*7 + 6 - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	tf := color.New(color.FgWhite, color.Italic)
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	hdr := color.New(color.Bold)
	for i, d := range calendar.WeekdayHeader {
		if i > 0 {
			_, _ = fmt.Fprint(pp.out(), " ")
		}
		_, _ = hdr.Fprintf(pp.out(), "%-*s", cellWidth, d)
	}
	_, _ = fmt.Fprintln(pp.out())

	other := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.Underline, color.FgHiCyan)
	plain := color.New()

	for _, week := range calendar.Weeks(buckets) {
		for i, b := range week {
			cell := fmt.Sprintf("%2d", b.Day)
			if n := len(b.Appointments); n > 0 {
				cell = fmt.Sprintf("%2d (%d)", b.Day, n)
			}
			printer := plain
			switch {
			case b.IsToday:
				printer = today
			case !b.IsCurrentMonth:
				printer = other
			case len(b.Appointments) > 0:
				printer = busy
			}
			if i > 0 {
				_, _ = fmt.Fprint(pp.out(), " ")
			}
			_, _ = printer.Fprintf(pp.out(), "%-*s", cellWidth, cell)
		}
		_, _ = fmt.Fprintln(pp.out())
	}
	pp.NewLine()

	for _, b := range buckets {
		if len(b.Appointments) == 0 {
			continue
		}
		pp.TitleWithCount(pp.Format.DisplayDay(b.FullDate), len(b.Appointments))
		_, _ = fmt.Fprintln(pp.out(), pp.table(b.Appointments, false))
		pp.NewLine()
	}
}
