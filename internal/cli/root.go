package cli

import (
	"io"
	"os"

	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Entries  service.EntryService
	Costs    service.CostService
	Health   service.HealthService
	Review   service.ReviewService
	Profile  service.ProfileService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Stdin is read by `log` when no text arguments are given.
	Stdin io.Reader
	// Prompter collects input for interactive `log`. Defaults to huh forms.
	Prompter Prompter
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) stdin() io.Reader {
	if a.Stdin != nil {
		return a.Stdin
	}
	return os.Stdin
}

// prompter returns the injected Prompter, or huh forms when stdin is a
// terminal. It returns nil when nobody can answer.
func (a *App) prompter() Prompter {
	if a.Prompter != nil {
		return a.Prompter
	}
	if a.interactive() {
		return huhPrompter{}
	}
	return nil
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Freelancer time log intake and project health",
		Long: `tally turns free-text work logs into time entries, then reports
per-project profitability, scope creep, and timesheet anomalies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newLogCmd(app),
		newEntryCmd(app),
		newCostCmd(app),
		newHealthCmd(app),
		newReviewCmd(app),
		newProfileCmd(app),
	)

	return root
}
