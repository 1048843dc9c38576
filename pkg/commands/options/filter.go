package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/filter"
	"tableflip.dev/clinic/pkg/viewstate"
)

// FilterOptions carries the view filters a command narrows the snapshot by.
type FilterOptions struct {
	Search string
	Date   string
	From   string
	To     string
	Status string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "q", "",
		"Match patient name, appointment type or notes (case-insensitive).")
	cmd.Flags().StringVarP(&o.Date, "date", "d", string(filter.DateAll),
		fmt.Sprintf("Date bucket, one of %s.", joinDates()))
	cmd.Flags().StringVar(&o.From, "from", "",
		`Start of a custom range, example: --from="2024-03-01". Implies --date=custom.`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`End of a custom range, inclusive. Implies --date=custom.`)
	cmd.Flags().StringVarP(&o.Status, "status", "s", string(filter.StatusAll),
		"Only show appointments with this status, or all.")

	_ = cmd.RegisterFlagCompletionFunc("date", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(filter.DateFilters()))
		for _, d := range filter.DateFilters() {
			out = append(out, string(d))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(filter.StatusFilters()))
		for _, s := range filter.StatusFilters() {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

func joinDates() string {
	names := make([]string, 0, len(filter.DateFilters()))
	for _, d := range filter.DateFilters() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

// Apply validates the options and writes them onto the store.
func (o *FilterOptions) Apply(st *viewstate.Store) error {
	date, err := filter.ParseDateFilter(o.Date)
	if err != nil {
		return err
	}
	if o.From != "" || o.To != "" {
		date = filter.DateCustom
		st.SetCustomRange(o.From, o.To)
	}
	if err := st.SetDateFilter(date); err != nil {
		return err
	}
	status, err := filter.ParseStatusFilter(o.Status)
	if err != nil {
		return err
	}
	if err := st.SetStatusFilter(status); err != nil {
		return err
	}
	st.SetSearchQuery(o.Search)
	return nil
}
