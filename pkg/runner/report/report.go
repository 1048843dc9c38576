// Package report summarizes a recent window of appointments.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/viewmodel"
)

// Report prints the appointments that started within Last before now, with
// counts and the visits still waiting for a final status.
type Report struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Last    string
	Now     func() time.Time
	JSON    bool
}

func (r *Report) Do(ctx context.Context) error {
	window, label, err := dateutil.ParseWindow(r.Last)
	if err != nil {
		return err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	until := now()
	since := until.Add(-window)

	result, err := r.Service.Report(ctx, since, until, until)
	if err != nil {
		return err
	}
	if r.JSON {
		return r.Printer.JSON(result)
	}

	pp := r.Printer
	_, _ = fmt.Fprintf(color.Output, "\nReport · last %s (%s → %s)\n\n", label,
		since.Format("2006-01-02 15:04"), until.Format("2006-01-02 15:04"))
	if result.Stats.Total == 0 {
		_, _ = fmt.Fprintln(color.Output, "  No appointments in this window.")
		pp.NewLine()
		return nil
	}
	pp.Agenda(viewmodel.Agenda{Days: result.Days})
	pp.Stats(result.Stats)
	if len(result.Outstanding) > 0 {
		warn := color.New(color.FgYellow, color.Bold)
		_, _ = warn.Fprintf(color.Output, "%d appointment(s) still need a final status\n", len(result.Outstanding))
		pp.List(result.Outstanding)
	}
	return nil
}
