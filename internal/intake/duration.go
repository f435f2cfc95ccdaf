package intake

import "github.com/alexanderramin/tally/internal/domain"

// DefaultDurationMinutes fills in a missing or unstated duration. It is the
// same for every category and currency.
const DefaultDurationMinutes = 60

// DurationResolution is the concrete minute count for an entry plus the
// issue its duration source raises, if any.
type DurationResolution struct {
	Minutes *int
	Issue   *domain.IssueCode
}

// NormalizeDuration applies the duration policy for one entry.
// An explicit source passes minutes through untouched, including nil.
func NormalizeDuration(minutes *int, source domain.DurationSource) DurationResolution {
	switch source {
	case domain.DurationMissing:
		issue := domain.IssueDurationMissing
		return DurationResolution{Minutes: domain.Ptr(DefaultDurationMinutes), Issue: &issue}
	case domain.DurationAmbiguous:
		issue := domain.IssueDurationAmbiguous
		if minutes == nil {
			return DurationResolution{Minutes: domain.Ptr(DefaultDurationMinutes), Issue: &issue}
		}
		return DurationResolution{Minutes: domain.Ptr(*minutes), Issue: &issue}
	default:
		if minutes == nil {
			return DurationResolution{}
		}
		return DurationResolution{Minutes: domain.Ptr(*minutes)}
	}
}
