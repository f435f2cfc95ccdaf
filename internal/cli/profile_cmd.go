package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the timezone and fallback project",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}
			preferred := formatter.Dim("none")
			if p.PreferredProjectID != nil {
				preferred = *p.PreferredProjectID
				if proj, err := app.Projects.GetByID(ctx, *p.PreferredProjectID); err == nil {
					preferred = fmt.Sprintf("%s [%s]", proj.Name, proj.DisplayID())
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-18s %s\n", formatter.Dim("Timezone"), p.Timezone)
			fmt.Fprintf(out, "%-18s %s\n", formatter.Dim("Preferred project"), preferred)
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var tz, preferred string
	var clearPreferred bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the timezone or the fallback project for unmatched entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if !flags.Changed("tz") && !flags.Changed("preferred-project") && !clearPreferred {
				return fmt.Errorf("nothing to set: pass --tz, --preferred-project or --clear-preferred")
			}
			out := cmd.OutOrStdout()

			if flags.Changed("tz") {
				if err := app.Profile.SetTimezone(ctx, tz); err != nil {
					return err
				}
				fmt.Fprintf(out, "Timezone set to %s\n", tz)
			}

			switch {
			case clearPreferred:
				if err := app.Profile.SetPreferredProject(ctx, ""); err != nil {
					return err
				}
				fmt.Fprintln(out, "Preferred project cleared")
			case flags.Changed("preferred-project"):
				p, err := resolveProject(ctx, app, preferred)
				if err != nil {
					return err
				}
				if err := app.Profile.SetPreferredProject(ctx, p.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Preferred project set to %s\n", p.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone, e.g. Asia/Seoul")
	cmd.Flags().StringVar(&preferred, "preferred-project", "", "Project used when log text names none")
	cmd.Flags().BoolVar(&clearPreferred, "clear-preferred", false, "Remove the preferred project")
	return cmd
}
