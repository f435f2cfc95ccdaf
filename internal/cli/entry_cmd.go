package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "List and remove saved time entries",
	}

	cmd.AddCommand(
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var project, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries, optionally by project and date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rng := repository.EntryRange{From: from, To: to}
			if project != "" {
				p, err := resolveProject(ctx, app, project)
				if err != nil {
					return err
				}
				rng.ProjectID = p.ID
			}

			entries, err := app.Entries.List(ctx, rng)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
				return nil
			}

			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntryList(entries, names))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID, ID prefix, or name")
	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD)")
	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <entry-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a time entry (an ID prefix is enough)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Entries.List(ctx, repository.EntryRange{})
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			id, err := resolveByPrefix("time entry", args[0], ids)
			if err != nil {
				return err
			}
			if err := app.Entries.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", id[:min(8, len(id))])
			return nil
		},
	}
}
