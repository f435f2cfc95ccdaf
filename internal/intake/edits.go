package intake

import (
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// Savable duration bounds, inclusive.
const (
	MinSavableMinutes = 1
	MaxSavableMinutes = 1440
)

// AssignProject records a user's project choice on a draft entry. A
// non-blank id clears both project issues; a blank one unassigns the entry.
func AssignProject(e *domain.NormalizedEntry, projectID string) {
	if strings.TrimSpace(projectID) == "" {
		e.MatchedProjectID = nil
		e.MatchSource = domain.MatchNone
		if !e.HasIssue(domain.IssueProjectUnmatched) {
			e.Issues = append([]domain.IssueCode{domain.IssueProjectUnmatched},
				domain.WithoutIssues(e.Issues, domain.IssueProjectAmbiguous)...)
		}
		e.ClarificationPrompt = unmatchedPrompt(e.ProjectNameRaw)
		refresh(e)
		return
	}
	e.MatchedProjectID = &projectID
	e.Issues = domain.WithoutIssues(e.Issues, domain.IssueProjectUnmatched, domain.IssueProjectAmbiguous)
	e.ClarificationPrompt = remainingDurationPrompt(e)
	refresh(e)
}

// SetDuration records a user's duration on a draft entry. Any value >= 1
// clears DURATION_MISSING. DURATION_AMBIGUOUS stays and its prompt follows
// the new value.
func SetDuration(e *domain.NormalizedEntry, minutes int) {
	e.DurationMinutes = &minutes
	if minutes >= MinSavableMinutes {
		e.Issues = domain.WithoutIssues(e.Issues, domain.IssueDurationMissing)
	}
	if !hasProjectIssue(e) {
		e.ClarificationPrompt = remainingDurationPrompt(e)
	}
	refresh(e)
}

func refresh(e *domain.NormalizedEntry) {
	e.NeedsUserAction = domain.HasBlocking(e.Issues)
}

func hasProjectIssue(e *domain.NormalizedEntry) bool {
	return e.HasIssue(domain.IssueProjectUnmatched) || e.HasIssue(domain.IssueProjectAmbiguous)
}

// remainingDurationPrompt is the prompt of the duration issue still on e,
// or "" when there is none.
func remainingDurationPrompt(e *domain.NormalizedEntry) string {
	switch {
	case e.HasIssue(domain.IssueDurationMissing):
		return durationPrompt(domain.IssueDurationMissing, e.DurationMinutes)
	case e.HasIssue(domain.IssueDurationAmbiguous):
		return durationPrompt(domain.IssueDurationAmbiguous, e.DurationMinutes)
	default:
		return ""
	}
}

// IsSavable reports whether a single draft entry can be persisted. The
// date must exist on the calendar: MM/DD input is not range-checked when
// resolved, so "2/30" arrives here as 2026-02-30.
func IsSavable(e *domain.NormalizedEntry) bool {
	if e.MatchedProjectID == nil || e.DurationMinutes == nil {
		return false
	}
	if !ValidDate(e.Date) {
		return false
	}
	m := *e.DurationMinutes
	return m >= MinSavableMinutes && m <= MaxSavableMinutes
}

// CanSaveAll reports whether a draft batch can be persisted as a whole.
// An empty batch is never savable.
func CanSaveAll(entries []domain.NormalizedEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for i := range entries {
		if !IsSavable(&entries[i]) {
			return false
		}
	}
	return true
}
