package cli

import "github.com/charmbracelet/huh"

// projectSelectForm returns a themed select over the offered projects.
func projectSelectForm(title string, options []projectOption, value *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

// minutesForm returns a themed single-field Form for a duration in minutes.
func minutesForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Minutes spent").
				Placeholder("60").
				Value(value).
				Validate(validateMinutes),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

// confirmForm returns a themed yes/no form.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

// logTextForm returns a themed multi-line input for a free-text work log.
func logTextForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What did you work on?").
				Description("Projects, tasks, dates and durations in your own words").
				Value(value),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}
