package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/alexanderramin/tally/internal/intelligence"
	"github.com/alexanderramin/tally/internal/llm"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
)

type logOptions struct {
	fromJSON    string
	interactive bool
	dryRun      bool
	yes         bool
}

func newLogCmd(app *App) *cobra.Command {
	var opts logOptions

	cmd := &cobra.Command{
		Use:   "log [text...]",
		Short: "Turn a free-text work log into time entries",
		Long: `Parse a free-text work log into a draft of time entries, show it, and
save it as one batch.

Text comes from the arguments, from stdin when it is not a terminal, or
from a prompt with --interactive. --from-json skips the model and reads an
already structured payload ("-" for stdin).

A draft can be saved when every entry has one project, a stated duration
between 1 and 1440 minutes and a real calendar date. Entries with blocking
issues (an unmatched or ambiguous project, a missing duration) must be
resolved with --interactive. Entries that only carry warnings (a vague
duration, an ambiguous date) are saved after a confirmation, or right away
with --yes.`,
		Example: `  tally log "2h logo sketches for brand yesterday, 30m call with Acme"
  pbpaste | tally log
  tally log --from-json entries.json --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, app, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.fromJSON, "from-json", "", "Read a structured payload from a file instead of parsing text")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt to resolve entries that need attention")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the draft without saving")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Save without confirmation, accepting warnings")

	return cmd
}

func runLog(cmd *cobra.Command, app *App, args []string, opts logOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var prompter Prompter
	if opts.interactive {
		if prompter = app.prompter(); prompter == nil {
			return fmt.Errorf("--interactive needs a terminal on stdin")
		}
	}

	draft, err := buildDraft(cmd, app, args, opts, prompter)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatDraft(draft))
	if len(draft.Entries) == 0 {
		return nil
	}

	if prompter != nil && draft.Blocking() > 0 {
		if err := fixDraft(draft, prompter); err != nil {
			return err
		}
		fmt.Fprintln(out, formatter.FormatDraft(draft))
	}

	if opts.dryRun {
		fmt.Fprintln(out, formatter.Dim("Dry run: nothing saved."))
		return nil
	}
	// --yes never clears a blocking issue.
	if n := draft.Blocking(); n > 0 {
		return fmt.Errorf("%w: %d entries need attention; resolve them with --interactive", service.ErrBatchNotSavable, n)
	}
	if !draft.Savable() {
		return fmt.Errorf("%w: fix the text and log again", service.ErrBatchNotSavable)
	}

	switch {
	case opts.yes:
	case prompter != nil:
		ok, err := prompter.Confirm(fmt.Sprintf("Save %d entries?", len(draft.Entries)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Discarded.")
			return nil
		}
	case draft.Warnings() > 0:
		return fmt.Errorf("%d entries carry warnings: review the draft and rerun with --yes or --interactive", draft.Warnings())
	}

	saved, err := app.Entries.SaveDraft(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatSaved(saved))

	return offerProgress(ctx, out, app, draft, saved, prompter)
}

// buildDraft produces the normalized draft from a JSON payload or from text.
func buildDraft(cmd *cobra.Command, app *App, args []string, opts logOptions, prompter Prompter) (*service.Draft, error) {
	ctx := cmd.Context()

	if opts.fromJSON != "" {
		data, err := readSource(app, opts.fromJSON)
		if err != nil {
			return nil, err
		}
		payload, err := intelligence.DecodePayload(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", opts.fromJSON, err)
		}
		return app.Entries.Normalize(ctx, payload)
	}

	text, err := logText(app, args, prompter)
	if err != nil {
		return nil, err
	}

	var stop func()
	if app.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Parsing work log...")
	}
	draft, err := app.Entries.ParseText(ctx, text)
	if stop != nil {
		stop()
	}
	if errors.Is(err, service.ErrLLMDisabled) {
		return nil, err
	}
	if err != nil {
		if hint := llm.Hint(err); hint != "" {
			return nil, fmt.Errorf("parsing work log: %w (%s)", err, hint)
		}
		return nil, fmt.Errorf("parsing work log: %w", err)
	}
	return draft, nil
}

func logText(app *App, args []string, prompter Prompter) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case prompter != nil:
		t, err := prompter.EnterLog()
		if err != nil {
			return "", err
		}
		text = t
	case !app.interactive():
		data, err := io.ReadAll(app.stdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no work log given: pass text, pipe it on stdin, or use --interactive")
	}
	return text, nil
}

func readSource(app *App, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(app.stdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// fixDraft walks the entries that need attention and applies the user's
// answers through the intake edit rules.
func fixDraft(draft *service.Draft, prompter Prompter) error {
	for i := range draft.Entries {
		e := &draft.Entries[i]
		if !intake.ValidDate(e.Date) {
			continue
		}
		if !e.NeedsUserAction && !domain.HasBlocking(e.Issues) && intake.IsSavable(e) {
			continue
		}

		if e.MatchedProjectID == nil || e.HasIssue(domain.IssueProjectAmbiguous) {
			options := projectOptions(e.ProjectNameRaw, draft.Projects)
			if len(options) == 0 {
				return fmt.Errorf("no active projects to assign: add one with `tally project add`")
			}
			id, err := prompter.ChooseProject(e, options)
			if err != nil {
				return err
			}
			intake.AssignProject(e, id)
		}

		if e.DurationMinutes == nil || e.HasIssue(domain.IssueDurationMissing) || !intake.IsSavable(e) {
			minutes, err := prompter.EnterMinutes(e)
			if err != nil {
				return err
			}
			if err := validateMinutes(fmt.Sprint(minutes)); err != nil {
				return err
			}
			intake.SetDuration(e, minutes)
		}
	}
	draft.Resummarize()
	return nil
}

// projectOptions lists the matcher's candidates first, then every other
// active project.
func projectOptions(ref string, projects []domain.ProjectForMatching) []projectOption {
	seen := make(map[string]bool, len(projects))
	byID := make(map[string]domain.ProjectForMatching, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	options := make([]projectOption, 0, len(projects))
	for _, c := range intake.MatchCandidates(ref, projects) {
		seen[c.ProjectID] = true
		options = append(options, projectOption{
			ID:    c.ProjectID,
			Label: fmt.Sprintf("%s (%s match)", byID[c.ProjectID].Name, c.Source),
		})
	}
	for _, p := range projects {
		if !seen[p.ID] {
			options = append(options, projectOption{ID: p.ID, Label: p.Name})
		}
	}
	return options
}

// offerProgress applies a detected progress hint. Without a prompter it only
// prints the command that would apply it.
func offerProgress(ctx context.Context, out io.Writer, app *App, draft *service.Draft, saved []*domain.TimeEntry, prompter Prompter) error {
	hint := draft.ProgressHint
	if hint == nil || !hint.Detected || hint.SuggestedProgress == nil {
		return nil
	}
	projectID := hintProject(hint, draft.Projects, saved)
	if projectID == "" {
		return nil
	}
	p, err := app.Projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	pct := *hint.SuggestedProgress

	if prompter == nil {
		fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Apply the progress update with: tally project progress %s %d", p.DisplayID(), pct)))
		return nil
	}
	ok, err := prompter.Confirm(fmt.Sprintf("Set %s progress from %d%% to %d%%?", p.Name, p.ProgressPercent, pct))
	if err != nil || !ok {
		return err
	}
	p, err = app.Projects.SetProgress(ctx, p.ID, pct)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", p.Name, formatter.RenderProgress(p.ProgressPercent, 20))
	return nil
}

// hintProject picks the project a hint refers to: the unique match of its
// project reference, else the single project every saved entry belongs to.
func hintProject(hint *domain.ProgressHint, projects []domain.ProjectForMatching, saved []*domain.TimeEntry) string {
	if hint.ProjectNameRaw != nil && strings.TrimSpace(*hint.ProjectNameRaw) != "" {
		m := intake.MatchProject(*hint.ProjectNameRaw, projects)
		if m.ProjectID != nil && m.CandidateCount == 1 {
			return *m.ProjectID
		}
		return ""
	}
	projectID := ""
	for _, e := range saved {
		if projectID != "" && e.ProjectID != projectID {
			return ""
		}
		projectID = e.ProjectID
	}
	return projectID
}
