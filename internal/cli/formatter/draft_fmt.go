package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/alexanderramin/tally/internal/service"
)

// FormatDraft renders a normalized batch for confirmation: one row per
// entry, then the issues and prompts of every entry that has any.
func FormatDraft(d *service.Draft) string {
	if len(d.Entries) == 0 {
		return RenderBox("Draft", Dim("The text contained no time entries."))
	}

	names := make(map[string]string, len(d.Projects))
	for _, p := range d.Projects {
		names[p.ID] = p.Name
	}

	headers := []string{"#", "DATE", "PROJECT", "TIME", "CATEGORY", "INTENT", "TASK"}
	rows := make([][]string, 0, len(d.Entries))
	for i := range d.Entries {
		e := &d.Entries[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			draftDateCell(e),
			draftProjectCell(e, names),
			draftMinutesCell(e),
			CategoryBadge(e.Category),
			string(e.Intent),
			e.TaskDescription,
		})
	}

	var b strings.Builder
	b.WriteString(Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{0: true, 3: true}}.Render())

	for i := range d.Entries {
		e := &d.Entries[i]
		badDate := !intake.ValidDate(e.Date)
		if len(e.Issues) == 0 && !badDate {
			continue
		}
		badges := make([]string, 0, len(e.Issues))
		for _, code := range e.Issues {
			badges = append(badges, IssueBadge(code))
		}
		b.WriteString(fmt.Sprintf("\n  %s %s", Bold(fmt.Sprintf("#%d", i+1)), strings.Join(badges, " ")))
		if badDate {
			b.WriteString("\n     " + StyleRed.Render(fmt.Sprintf("✖ %s is not a calendar date; fix the text and log again", e.Date)))
		}
		if e.ClarificationPrompt != "" {
			b.WriteString("\n     " + StyleFg.Render(e.ClarificationPrompt))
		}
	}
	if needsNotes(d.Entries) {
		b.WriteString("\n")
	}

	b.WriteString("\n" + FormatDraftSummary(d.Summary))
	if hint := FormatProgressHint(d.ProgressHint); hint != "" {
		b.WriteString("\n" + hint)
	}
	return RenderBox("Draft", b.String())
}

// FormatDraftSummary renders the batch counts.
func FormatDraftSummary(s domain.ParseSummary) string {
	line := fmt.Sprintf("%d entries, %d need attention", s.Total, s.Blocking)
	if s.Blocking > 0 {
		return StyleYellow.Render(line)
	}
	return StyleGreen.Render(line)
}

// FormatProgressHint renders the detected progress suggestion, or "".
func FormatProgressHint(h *domain.ProgressHint) string {
	if h == nil || !h.Detected || h.SuggestedProgress == nil {
		return ""
	}
	out := StyleBlue.Render(fmt.Sprintf("Progress update detected: %d%%", *h.SuggestedProgress))
	if h.ProjectNameRaw != nil && *h.ProjectNameRaw != "" {
		out += Dim(" for " + *h.ProjectNameRaw)
	}
	if h.Reason != "" {
		out += Dim(fmt.Sprintf(" (%s)", h.Reason))
	}
	return out
}

// FormatSaved renders the confirmation after a batch was written.
func FormatSaved(entries []*domain.TimeEntry) string {
	total := 0
	for _, e := range entries {
		total += e.Minutes
	}
	return StyleGreen.Render(fmt.Sprintf("Saved %d entries (%s).", len(entries), FormatMinutes(total)))
}

func draftProjectCell(e *domain.NormalizedEntry, names map[string]string) string {
	if e.MatchedProjectID == nil {
		raw := e.ProjectNameRaw
		if raw == "" {
			raw = "?"
		}
		return StyleRed.Render(raw)
	}
	name := names[*e.MatchedProjectID]
	if name == "" {
		name = (*e.MatchedProjectID)[:min(8, len(*e.MatchedProjectID))]
	}
	if e.HasIssue(domain.IssueProjectAmbiguous) {
		return StyleYellow.Render(name + "?")
	}
	if e.MatchSource == domain.MatchPreferred {
		return name + Dim(" (preferred)")
	}
	return name
}

func draftMinutesCell(e *domain.NormalizedEntry) string {
	if e.DurationMinutes == nil {
		return StyleRed.Render("?")
	}
	text := FormatMinutes(*e.DurationMinutes)
	if e.HasIssue(domain.IssueDurationMissing) || e.HasIssue(domain.IssueDurationAmbiguous) {
		return StyleYellow.Render(text + "?")
	}
	return text
}

func draftDateCell(e *domain.NormalizedEntry) string {
	if !intake.ValidDate(e.Date) {
		return StyleRed.Render(e.Date + "!")
	}
	if e.StartTime != "" {
		return e.Date + " " + Dim(e.StartTime)
	}
	return e.Date
}

func needsNotes(entries []domain.NormalizedEntry) bool {
	for i := range entries {
		if len(entries[i].Issues) > 0 || !intake.ValidDate(entries[i].Date) {
			return true
		}
	}
	return false
}
