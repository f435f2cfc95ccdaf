package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/alexanderramin/tally/internal/repository"
)

// TimeContext supplies the clock and an optional timezone override to the
// services that resolve calendar dates.
type TimeContext struct {
	Now              func() time.Time
	TimezoneOverride string
}

func (tc TimeContext) now() time.Time {
	if tc.Now == nil {
		return time.Now().UTC()
	}
	return tc.Now()
}

// location resolves the user's zone: override, then stored profile, then UTC.
func (tc TimeContext) location(profile *domain.UserProfile) (*time.Location, error) {
	stored := ""
	if profile != nil {
		stored = profile.Timezone
	}
	return intake.LoadTimezone(domain.Coalesce(tc.TimezoneOverride, stored, "UTC"))
}

func projectNotFound(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return err
}

func forMatching(projects []*domain.Project) []domain.ProjectForMatching {
	out := make([]domain.ProjectForMatching, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ForMatching())
	}
	return out
}
