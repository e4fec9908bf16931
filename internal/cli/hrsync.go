package cli

import (
	"github.com/spf13/cobra"
)

// NewHRSyncCommand creates the roster sync command.
func NewHRSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hr-sync",
		Short: "Sync the employee roster from the HR directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), rootOpts.Verbose)
			if err != nil {
				return err
			}
			defer e.Close()

			result, err := e.hrSyncSvc.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}
