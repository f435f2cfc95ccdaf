package scope

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/tally/internal/domain"
)

// Rule thresholds.
const (
	TimeRatioThreshold     = 0.8
	ProgressCeilingPct     = 50
	RevisionRatioThreshold = 0.4
	RevisionCountThreshold = 5
)

// ErrUnknownCategory means an itemized entry carried a category outside the
// closed set. It is a caller bug, never a data-quality signal.
var ErrUnknownCategory = errors.New("unknown entry category")

type Input struct {
	ExpectedHours       *float64
	ProgressPercent     int
	AgreedRevisionCount *int
	TotalMinutes        int
	Entries             []domain.ItemizedMinutes
}

// TimeProgressMeta backs rule 1: most of the budgeted time is spent but less
// than half the work is done.
type TimeProgressMeta struct {
	TimeRatio       float64 `json:"time_ratio"`
	TotalHours      float64 `json:"total_hours"`
	ExpectedHours   float64 `json:"expected_hours"`
	ProgressPercent int     `json:"progress_percent"`
}

// RevisionTimeMeta backs rule 2: revisions eat a large share of logged time.
type RevisionTimeMeta struct {
	RevisionRatio   float64 `json:"revision_ratio"`
	RevisionMinutes int     `json:"revision_minutes"`
	TotalMinutes    int     `json:"total_minutes"`
}

// RevisionCountMeta backs rule 3: many separate revision entries.
type RevisionCountMeta struct {
	RevisionCount int `json:"revision_count"`
	Threshold     int `json:"threshold"`
}

// RevisionAgreementMeta backs rule 4: more revisions than the contract allows.
type RevisionAgreementMeta struct {
	RevisionCount       int `json:"revision_count"`
	AgreedRevisionCount int `json:"agreed_revision_count"`
}

// Metadata holds one sub-object per fired rule, keyed by rule name.
type Metadata struct {
	Rule1 *TimeProgressMeta      `json:"scope_rule1,omitempty"`
	Rule2 *RevisionTimeMeta      `json:"scope_rule2,omitempty"`
	Rule3 *RevisionCountMeta     `json:"scope_rule3,omitempty"`
	Rule4 *RevisionAgreementMeta `json:"scope_rule4,omitempty"`
}

// Result lists fired rules in rule-number order.
type Result struct {
	Triggered []domain.ScopeTrigger `json:"triggered"`
	Metadata  Metadata              `json:"metadata"`
}

// Evaluate runs the four scope-creep rules. It returns nil when none fire.
func Evaluate(input Input) (*Result, error) {
	var revisionMinutes, revisionCount int
	for _, e := range input.Entries {
		if !domain.ValidCategories[e.Category] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, e.Category)
		}
		if e.Category == domain.CategoryRevision {
			revisionMinutes += e.Minutes
			revisionCount++
		}
	}

	res := &Result{}

	if h := input.ExpectedHours; h != nil && *h > 0 {
		totalHours := float64(input.TotalMinutes) / 60
		ratio := totalHours / *h
		if ratio >= TimeRatioThreshold && input.ProgressPercent < ProgressCeilingPct {
			res.Triggered = append(res.Triggered, domain.ScopeRule1)
			res.Metadata.Rule1 = &TimeProgressMeta{
				TimeRatio:       round2(ratio),
				TotalHours:      round2(totalHours),
				ExpectedHours:   *h,
				ProgressPercent: input.ProgressPercent,
			}
		}
	}

	if input.TotalMinutes > 0 {
		ratio := float64(revisionMinutes) / float64(input.TotalMinutes)
		if ratio >= RevisionRatioThreshold {
			res.Triggered = append(res.Triggered, domain.ScopeRule2)
			res.Metadata.Rule2 = &RevisionTimeMeta{
				RevisionRatio:   round2(ratio),
				RevisionMinutes: revisionMinutes,
				TotalMinutes:    input.TotalMinutes,
			}
		}
	}

	if revisionCount >= RevisionCountThreshold {
		res.Triggered = append(res.Triggered, domain.ScopeRule3)
		res.Metadata.Rule3 = &RevisionCountMeta{
			RevisionCount: revisionCount,
			Threshold:     RevisionCountThreshold,
		}
	}

	if agreed := input.AgreedRevisionCount; agreed != nil && *agreed > 0 {
		if revisionCount > *agreed {
			res.Triggered = append(res.Triggered, domain.ScopeRule4)
			res.Metadata.Rule4 = &RevisionAgreementMeta{
				RevisionCount:       revisionCount,
				AgreedRevisionCount: *agreed,
			}
		}
	}

	if len(res.Triggered) == 0 {
		return nil, nil
	}
	return res, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
