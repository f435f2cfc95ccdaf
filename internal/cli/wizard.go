package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tallyHuhTheme returns a custom huh theme using the Gruvbox palette.
func tallyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectOption is one choice offered when an entry's project is unresolved.
type projectOption struct {
	ID    string
	Label string
}

// Prompter asks the user for log text and for the values a draft entry is
// missing.
type Prompter interface {
	EnterLog() (string, error)
	ChooseProject(e *domain.NormalizedEntry, options []projectOption) (string, error)
	EnterMinutes(e *domain.NormalizedEntry) (int, error)
	Confirm(title string) (bool, error)
}

// huhPrompter prompts on the terminal with huh forms.
type huhPrompter struct{}

func (huhPrompter) EnterLog() (string, error) {
	var text string
	if err := logTextForm(&text).Run(); err != nil {
		return "", err
	}
	return text, nil
}

func (huhPrompter) ChooseProject(e *domain.NormalizedEntry, options []projectOption) (string, error) {
	var id string
	if err := projectSelectForm(entryTitle(e), options, &id).Run(); err != nil {
		return "", err
	}
	return id, nil
}

func (huhPrompter) EnterMinutes(e *domain.NormalizedEntry) (int, error) {
	value := ""
	if e.DurationMinutes != nil {
		value = strconv.Itoa(*e.DurationMinutes)
	}
	if err := minutesForm(entryTitle(e), &value).Run(); err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (huhPrompter) Confirm(title string) (bool, error) {
	ok := true
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func entryTitle(e *domain.NormalizedEntry) string {
	if e.ClarificationPrompt != "" {
		return e.ClarificationPrompt
	}
	return fmt.Sprintf("%s: %s", e.Date, e.TaskDescription)
}

// validateMinutes accepts a whole number of minutes a draft entry can be saved with.
func validateMinutes(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < intake.MinSavableMinutes || v > intake.MaxSavableMinutes {
		return fmt.Errorf("enter minutes between %d and %d", intake.MinSavableMinutes, intake.MaxSavableMinutes)
	}
	return nil
}
