package domain

import "slices"

// IssueCode is the closed set of defects the normalizer can attach to an entry.
type IssueCode string

const (
	IssueProjectUnmatched  IssueCode = "PROJECT_UNMATCHED"
	IssueProjectAmbiguous  IssueCode = "PROJECT_AMBIGUOUS"
	IssueDurationMissing   IssueCode = "DURATION_MISSING"
	IssueDateAmbiguous     IssueCode = "DATE_AMBIGUOUS"
	IssueDurationAmbiguous IssueCode = "DURATION_AMBIGUOUS"
	IssueCategoryAmbiguous IssueCode = "CATEGORY_AMBIGUOUS"
	IssueFutureIntent      IssueCode = "FUTURE_INTENT"
)

// BlockingIssues must be cleared before an entry can be saved.
var BlockingIssues = map[IssueCode]bool{
	IssueProjectUnmatched: true,
	IssueProjectAmbiguous: true,
	IssueDurationMissing:  true,
}

// WarningIssues are surfaced to the user but never block saving.
var WarningIssues = map[IssueCode]bool{
	IssueDateAmbiguous:     true,
	IssueDurationAmbiguous: true,
	IssueCategoryAmbiguous: true,
	IssueFutureIntent:      true,
}

// IsBlocking reports whether code belongs to the blocking set.
func (c IssueCode) IsBlocking() bool {
	return BlockingIssues[c]
}

// IsKnown reports whether code is classified into exactly one of the two sets.
func (c IssueCode) IsKnown() bool {
	return BlockingIssues[c] != WarningIssues[c]
}

// HasBlocking reports whether any code in issues is blocking.
func HasBlocking(issues []IssueCode) bool {
	return slices.ContainsFunc(issues, IssueCode.IsBlocking)
}

// WithoutIssues returns issues minus every code in drop, preserving order.
func WithoutIssues(issues []IssueCode, drop ...IssueCode) []IssueCode {
	out := make([]IssueCode, 0, len(issues))
	for _, c := range issues {
		if !slices.Contains(drop, c) {
			out = append(out, c)
		}
	}
	return out
}
