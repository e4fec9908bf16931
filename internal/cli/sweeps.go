package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type sweepOptions struct {
	*RootOptions
	Date string
}

// NewNotifyCommand creates the pre-day sweep command.
func NewNotifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run the pre-day notification sweep",
		Long: `Send opt-in DMs for tomorrow's birthdays and milestone anniversaries.

With --date the sweep acts as if it ran on that day, so it targets the day
after the given date. Useful for catching up after an outage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseDateFlag(opts.Date)
			if err != nil {
				return err
			}

			e, err := newEnv(cmd.Context(), opts.Verbose)
			if err != nil {
				return err
			}
			defer e.Close()

			result, err := e.notifySvc.RunPreDaySweep(cmd.Context(), now)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "override sweep day (YYYY-MM-DD)")

	return cmd
}

// NewCelebrateCommand creates the day-of sweep command.
func NewCelebrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "celebrate",
		Short: "Run the day-of celebration sweep",
		Long:  "Publish celebration messages for the day's approved, unannounced records.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseDateFlag(opts.Date)
			if err != nil {
				return err
			}

			e, err := newEnv(cmd.Context(), opts.Verbose)
			if err != nil {
				return err
			}
			defer e.Close()

			result, err := e.celebrateSvc.RunDayOfSweep(cmd.Context(), now)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "override sweep day (YYYY-MM-DD)")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
