package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// NormalizeOptions is the per-user context every entry of a batch shares.
type NormalizeOptions struct {
	Projects           []domain.ProjectForMatching
	PreferredProjectID *string
	Location           *time.Location
	Now                time.Time
}

// Batch is the output of normalizing one LLM payload.
type Batch struct {
	Entries      []domain.NormalizedEntry
	Summary      domain.ParseSummary
	ProgressHint *domain.ProgressHint
}

// NormalizeEntry resolves one raw entry. Issues are appended in detection
// order: project, date, duration, intent.
func NormalizeEntry(raw domain.RawParsedEntry, opts NormalizeOptions) domain.NormalizedEntry {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	entry := domain.NormalizedEntry{
		ProjectNameRaw:  raw.ProjectNameRaw,
		TaskDescription: raw.TaskDescription,
		DurationSource:  raw.DurationSource,
		Category:        raw.Category,
		Intent:          raw.Intent,
		MatchSource:     domain.MatchNone,
		Issues:          []domain.IssueCode{},
	}

	match := MatchProject(raw.ProjectNameRaw, opts.Projects)
	switch {
	case match.CandidateCount == 0:
		if preferred, ok := preferredProject(opts); ok {
			entry.MatchedProjectID = &preferred
			entry.MatchSource = domain.MatchPreferred
			break
		}
		entry.Issues = append(entry.Issues, domain.IssueProjectUnmatched)
		entry.ClarificationPrompt = unmatchedPrompt(raw.ProjectNameRaw)
	case match.CandidateCount == 1:
		entry.MatchedProjectID = match.ProjectID
		entry.MatchSource = match.Source
	default:
		entry.MatchedProjectID = match.ProjectID
		entry.MatchSource = match.Source
		entry.Issues = append(entry.Issues, domain.IssueProjectAmbiguous)
		entry.ClarificationPrompt = fmt.Sprintf("%q matches %d projects. Which one did you mean?",
			strings.TrimSpace(raw.ProjectNameRaw), match.CandidateCount)
	}

	date := ResolveDate(raw.Date, loc, opts.Now)
	entry.Date = date.Date
	entry.StartTime = ResolveStartTime(raw.StartTime)
	if date.Ambiguous {
		entry.Issues = append(entry.Issues, domain.IssueDateAmbiguous)
	}

	duration := NormalizeDuration(raw.DurationMinutes, raw.DurationSource)
	entry.DurationMinutes = duration.Minutes
	if duration.Issue != nil {
		entry.Issues = append(entry.Issues, *duration.Issue)
		if entry.ClarificationPrompt == "" {
			entry.ClarificationPrompt = durationPrompt(*duration.Issue, duration.Minutes)
		}
	}

	if raw.Intent == domain.IntentPlanned {
		entry.Issues = append(entry.Issues, domain.IssueFutureIntent)
	}

	entry.NeedsUserAction = domain.HasBlocking(entry.Issues)
	return entry
}

// NormalizeBatch normalizes every raw entry and summarises the result.
// The progress hint is carried through only when it was detected.
func NormalizeBatch(raws []domain.RawParsedEntry, hint *domain.ProgressHint, opts NormalizeOptions) Batch {
	entries := make([]domain.NormalizedEntry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, NormalizeEntry(raw, opts))
	}
	return Batch{
		Entries:      entries,
		Summary:      Summarize(entries),
		ProgressHint: PassProgressHint(hint),
	}
}

// Summarize counts entries and the ones that still need user action.
func Summarize(entries []domain.NormalizedEntry) domain.ParseSummary {
	summary := domain.ParseSummary{Total: len(entries)}
	for i := range entries {
		if entries[i].NeedsUserAction {
			summary.Blocking++
		}
	}
	return summary
}

// PassProgressHint returns a copy of hint when detected, else nil.
func PassProgressHint(hint *domain.ProgressHint) *domain.ProgressHint {
	if hint == nil || !hint.Detected {
		return nil
	}
	out := *hint
	return &out
}

func preferredProject(opts NormalizeOptions) (string, bool) {
	if opts.PreferredProjectID == nil {
		return "", false
	}
	for _, p := range opts.Projects {
		if p.ID == *opts.PreferredProjectID {
			return p.ID, true
		}
	}
	return "", false
}

func unmatchedPrompt(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "Which project was this work for?"
	}
	return fmt.Sprintf("No project matches %q. Which project was this for?", ref)
}

func durationPrompt(issue domain.IssueCode, minutes *int) string {
	if issue == domain.IssueDurationMissing {
		return "How long did you work on this?"
	}
	return fmt.Sprintf("Logged as %d minutes. Is that right?", domain.Deref(minutes, DefaultDurationMinutes))
}
