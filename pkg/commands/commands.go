package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/clinic/pkg/config"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "clinic",
		Short: base.Wrap80("Browse and update the clinic appointment book from the command line."),
		Long: base.Wrap80("clinic reads appointments from a PocketBase server or a local cache " +
			"and shows them as a list, a day-by-day agenda or a four week calendar. " +
			"Settings come from .clinic.yaml in the current or home directory and CLINIC_* environment variables."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("source", config.SourceLocal, "Where appointments come from, local or pocketbase.")
	flags.String("path", "", "Directory of the local appointment cache.")
	flags.String("log-level", "", "Log level, for example debug or warn.")
	_ = viper.BindPFlag("source", flags.Lookup("source"))
	_ = viper.BindPFlag("path", flags.Lookup("path"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = cmd.RegisterFlagCompletionFunc("source", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.SourceLocal, config.SourcePocketBase}, cobra.ShellCompDirectiveNoFileComp
	})

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addAgenda(topLevel)
	addCalendar(topLevel)
	addShow(topLevel)
	addStatus(topLevel)
	addStats(topLevel)
	addStatuses(topLevel)
	addAdd(topLevel)
	addSync(topLevel)
	addReport(topLevel)
	addUI(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
