package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their contract terms",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectProgressCmd(app),
		newProjectArchiveCmd(app),
	)

	return cmd
}

// termFlags are the contract fields shared by add and update.
type termFlags struct {
	name      string
	aliases   []string
	client    string
	fee       float64
	hours     float64
	platform  float64
	tax       float64
	revisions int
}

func (f *termFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringSliceVar(&f.aliases, "alias", nil, "Alias used when matching log text (repeatable)")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().Float64Var(&f.fee, "fee", 0, "Expected fee")
	cmd.Flags().Float64Var(&f.hours, "hours", 0, "Expected hours")
	cmd.Flags().Float64Var(&f.platform, "platform-fee", 0, "Platform fee rate in [0,1]")
	cmd.Flags().Float64Var(&f.tax, "tax", 0, "Tax rate in [0,1]")
	cmd.Flags().IntVar(&f.revisions, "revisions", 0, "Agreed revision count")
}

// apply copies every flag the user set onto p.
func (f *termFlags) apply(cmd *cobra.Command, p *domain.Project) {
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = f.name
	}
	if changed("alias") {
		p.Aliases = f.aliases
	}
	if changed("client") {
		p.ClientName = nil
		if f.client != "" {
			p.ClientName = domain.Ptr(f.client)
		}
	}
	if changed("fee") {
		p.Terms.ExpectedFee = f.fee
	}
	if changed("hours") {
		p.Terms.ExpectedHours = domain.Ptr(f.hours)
	}
	if changed("platform-fee") {
		p.Terms.PlatformFeeRate = f.platform
	}
	if changed("tax") {
		p.Terms.TaxRate = f.tax
	}
	if changed("revisions") {
		p.Terms.AgreedRevisionCount = domain.Ptr(f.revisions)
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var flags termFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Example: `  tally project add --name "Brand Refresh" --alias brand --client Acme \
    --fee 1000000 --hours 40 --platform-fee 0.1 --tax 0.033 --revisions 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Aliases: []string{}}
			flags.apply(cmd, p)

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("fee")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's contract terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var flags termFlags

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Change a project's name, aliases or terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd, p)
			if err := app.Projects.Update(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newProjectProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <project> <percent>",
		Short: "Set a project's self-reported progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[1], err)
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			p, err = app.Projects.SetProgress(cmd.Context(), p.ID, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", p.Name, formatter.RenderProgress(p.ProgressPercent, 20))
			return nil
		},
	}
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <project>",
		Short: "Archive a project; its entries stay for reporting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", p.Name)
			return nil
		},
	}
}
