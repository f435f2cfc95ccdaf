package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Record costs against a project",
	}

	cmd.AddCommand(
		newCostAddCmd(app),
		newCostListCmd(app),
		newCostRemoveCmd(app),
	)

	return cmd
}

func newCostAddCmd(app *App) *cobra.Command {
	var costType, memo string

	cmd := &cobra.Command{
		Use:   "add <project> <amount>",
		Short: "Add a cost entry",
		Long: `Add a cost entry. Only fixed costs reduce net income directly; platform
fees and tax are derived from the project's rates, so entries of those
types are kept for the record but not counted twice.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amount float64
			if _, err := fmt.Sscanf(args[1], "%g", &amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			c := &domain.CostEntry{
				ProjectID: p.ID,
				Amount:    amount,
				CostType:  domain.CostType(costType),
				Memo:      memo,
			}
			if err := app.Costs.Add(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s cost of %s to %s\n", c.CostType, formatter.FormatMoney(c.Amount), p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&costType, "type", string(domain.CostFixed), "Cost type: fixed, platform_fee or tax")
	cmd.Flags().StringVar(&memo, "memo", "", "What the cost was for")
	return cmd
}

func newCostListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project>",
		Short: "List a project's cost entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			costs, err := app.Costs.ListByProject(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			if len(costs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No costs recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCostList(costs))
			return nil
		},
	}
}

func newCostRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "rm <cost-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a cost entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			costs, err := app.Costs.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(costs))
			for _, c := range costs {
				ids = append(ids, c.ID)
			}
			id, err := resolveByPrefix("cost entry", args[0], ids)
			if err != nil {
				return err
			}
			if err := app.Costs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted cost %s\n", id[:min(8, len(id))])
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project the cost belongs to")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
