package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jubilee/internal/config"
	"jubilee/internal/database"
)

// NewMigrateStatusCommand reports which migrations have been applied.
func NewMigrateStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-status",
		Short: "Show applied and pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := database.OpenPostgres(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			status, err := database.MigrationStatus(cmd.Context(), db, cfg.DB.MigrationsDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}
