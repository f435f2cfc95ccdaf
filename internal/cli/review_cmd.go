package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Flag timesheet anomalies in a date range",
		Long: `List the entries in a date range and flag weekend work, late-night
starts, long sessions, backdated entries and streaks of round numbers.
Defaults to the last 7 days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if to == "" {
				to = time.Now().Format("2006-01-02")
			}
			if from == "" {
				end, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid to date %q: %w", to, err)
				}
				from = end.AddDate(0, 0, -6).Format("2006-01-02")
			}

			sheet, err := app.Review.Timesheet(ctx, from, to)
			if err != nil {
				return err
			}
			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimesheet(sheet, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD), default today")
	return cmd
}
