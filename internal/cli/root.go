package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the jubilee admin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "jubilee-admin",
		Short:         "Operational commands for the celebration bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewNotifyCommand(opts))
	cmd.AddCommand(NewCelebrateCommand(opts))
	cmd.AddCommand(NewHRSyncCommand(opts))
	cmd.AddCommand(NewMigrateStatusCommand(opts))

	return cmd
}
