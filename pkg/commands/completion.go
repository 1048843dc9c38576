package commands

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/config"
	"tableflip.dev/clinic/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(clinic completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(clinic completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeIDs offers the ids in the local cache. It never reaches the
// network so completion stays fast.
func completeIDs(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := store.Load(cfg, zerolog.Nop())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, r := range p.ListAll(context.Background()) {
		if strings.HasPrefix(r.ID, toComplete) {
			ids = append(ids, r.ID+"\t"+r.PatientName())
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func statusCompletions() []string {
	out := make([]string, 0, len(appointment.Statuses()))
	for _, s := range appointment.Statuses() {
		out = append(out, string(s)+"\t"+s.Label())
	}
	return out
}
