package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID              string
	Name            string
	Aliases         []string
	ClientName      *string
	Terms           ProjectCommercialTerms
	ProgressPercent int
	Status          ProjectStatus
	ArchivedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProjectCommercialTerms are the contracted numbers of a project.
// ExpectedHours and AgreedRevisionCount are optional.
type ProjectCommercialTerms struct {
	ExpectedFee         float64
	ExpectedHours       *float64
	PlatformFeeRate     float64
	TaxRate             float64
	AgreedRevisionCount *int
}

// ProjectForMatching is the read-only view the matcher resolves against.
type ProjectForMatching struct {
	ID         string
	Name       string
	Aliases    []string
	ClientName *string
}

// ForMatching projects p onto the matcher's view.
func (p *Project) ForMatching() ProjectForMatching {
	return ProjectForMatching{
		ID:         p.ID,
		Name:       p.Name,
		Aliases:    p.Aliases,
		ClientName: p.ClientName,
	}
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Validate checks the fields a user can set on a project.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Terms.ExpectedFee < 0 {
		return fmt.Errorf("expected fee must be >= 0, got %v", p.Terms.ExpectedFee)
	}
	if p.Terms.ExpectedHours != nil && *p.Terms.ExpectedHours < 0 {
		return fmt.Errorf("expected hours must be >= 0, got %v", *p.Terms.ExpectedHours)
	}
	if p.Terms.PlatformFeeRate < 0 || p.Terms.PlatformFeeRate > 1 {
		return fmt.Errorf("platform fee rate must be in [0,1], got %v", p.Terms.PlatformFeeRate)
	}
	if p.Terms.TaxRate < 0 || p.Terms.TaxRate > 1 {
		return fmt.Errorf("tax rate must be in [0,1], got %v", p.Terms.TaxRate)
	}
	if p.Terms.AgreedRevisionCount != nil && *p.Terms.AgreedRevisionCount < 0 {
		return fmt.Errorf("agreed revision count must be >= 0, got %d", *p.Terms.AgreedRevisionCount)
	}
	if p.ProgressPercent < 0 || p.ProgressPercent > 100 {
		return fmt.Errorf("progress must be in [0,100], got %d", p.ProgressPercent)
	}
	return nil
}

// SetProgress updates ProgressPercent after range validation.
func (p *Project) SetProgress(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("progress must be in [0,100], got %d", pct)
	}
	p.ProgressPercent = pct
	p.UpdatedAt = now
	return nil
}
