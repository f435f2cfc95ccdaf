package domain

import "time"

// RawParsedEntry is one candidate time entry as returned by the LLM.
// Date is free text or nil; DurationMinutes may be nil even when the
// source claims to be explicit, which is kept visible rather than rejected.
type RawParsedEntry struct {
	ProjectNameRaw  string         `json:"project_name_raw"`
	TaskDescription string         `json:"task_description"`
	Date            *string        `json:"date"`
	DurationMinutes *int           `json:"duration_minutes"`
	DurationSource  DurationSource `json:"duration_source"`
	Category        Category       `json:"category"`
	Intent          Intent         `json:"intent"`
	// StartTime is the wall-clock start ("23:10") when the log stated one.
	StartTime *string `json:"start_time,omitempty"`
}

// ProgressHint is the LLM's guess that the text reported project progress.
type ProgressHint struct {
	Detected          bool    `json:"detected"`
	SuggestedProgress *int    `json:"suggested_progress"`
	Reason            string  `json:"reason"`
	ProjectNameRaw    *string `json:"project_name_raw"`
}

// NormalizedEntry is a RawParsedEntry with every field resolved and its
// defects recorded as issue codes. Issues keep detection order:
// project, date, duration, intent.
type NormalizedEntry struct {
	ProjectNameRaw      string
	TaskDescription     string
	Date                string // YYYY-MM-DD in the user's timezone
	StartTime           string // HH:MM in the user's timezone, "" when unknown
	DurationMinutes     *int
	DurationSource      DurationSource
	Category            Category
	Intent              Intent
	MatchedProjectID    *string
	MatchSource         MatchSource
	Issues              []IssueCode
	NeedsUserAction     bool
	ClarificationPrompt string
}

// HasIssue reports whether code is attached to the entry.
func (e *NormalizedEntry) HasIssue(code IssueCode) bool {
	for _, c := range e.Issues {
		if c == code {
			return true
		}
	}
	return false
}

// ParseSummary counts a batch of normalized entries.
type ParseSummary struct {
	Total    int `json:"total"`
	Blocking int `json:"blocking"`
}

// TimeEntry is a persisted unit of logged work.
type TimeEntry struct {
	ID          string
	ProjectID   string
	Date        string // YYYY-MM-DD
	Minutes     int
	Category    Category
	Intent      Intent
	Description string
	StartedAt   *time.Time
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// CostEntry is a persisted cost against a project.
type CostEntry struct {
	ID        string
	ProjectID string
	Amount    float64
	CostType  CostType
	Memo      string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// ItemizedMinutes is the per-entry slice the scope rules consume.
type ItemizedMinutes struct {
	Minutes  int
	Category Category
}

// AggregatedTimeFacts summarises the done entries of one project.
type AggregatedTimeFacts struct {
	TotalMinutes    int
	ItemizedEntries []ItemizedMinutes
}

// AggregateDone folds entries with intent=done into AggregatedTimeFacts.
// Callers pass entries already filtered to one project and not soft-deleted.
func AggregateDone(entries []*TimeEntry) AggregatedTimeFacts {
	facts := AggregatedTimeFacts{ItemizedEntries: []ItemizedMinutes{}}
	for _, e := range entries {
		if e.Intent != IntentDone {
			continue
		}
		facts.TotalMinutes += e.Minutes
		facts.ItemizedEntries = append(facts.ItemizedEntries, ItemizedMinutes{
			Minutes:  e.Minutes,
			Category: e.Category,
		})
	}
	return facts
}

// EntryFlag is an anomaly attached to one persisted time entry.
type EntryFlag struct {
	EntryID  string         `json:"entry_id"`
	FlagType FlagType       `json:"flag_type"`
	Severity Severity       `json:"severity"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
