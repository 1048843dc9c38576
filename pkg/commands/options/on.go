package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions picks the reference day of the calendar.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Show the four weeks around a date, example: --on="2024-3-28" or --on="3/28".`)
}

// GetOn parses the flag in loc. An empty flag returns now.
func (o *OnOptions) GetOn(now time.Time, loc *time.Location) (time.Time, error) {
	if o.OnString == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, loc)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, loc)
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return t, nil
}
