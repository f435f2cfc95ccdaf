package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHealthCmd(app *App) *cobra.Command {
	var dismiss bool

	cmd := &cobra.Command{
		Use:   "health <project>",
		Short: "Show profitability and scope creep for a project",
		Long: `Compute gross and net income, nominal and real hourly rates from the
project's terms, its costs and the time logged as done, then run the
scope-creep rules. A new alert is stored the first time rules fire while
no alert is active. --dismiss clears the active alert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			h, err := app.Health.ProjectHealth(ctx, p.ID)
			if err != nil {
				return err
			}

			if dismiss {
				if h.Alert == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No active scope alert.")
					return nil
				}
				if err := app.Health.DismissAlert(ctx, h.Alert.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dismissed scope alert for %s\n", p.Name)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHealth(h))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dismiss, "dismiss", false, "Dismiss the project's active scope alert")
	return cmd
}
