package testutil

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithAliases(aliases ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Aliases = aliases
	}
}

func WithClient(name string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientName = &name
	}
}

func WithExpectedFee(fee float64) ProjectOption {
	return func(p *domain.Project) {
		p.Terms.ExpectedFee = fee
	}
}

func WithExpectedHours(h float64) ProjectOption {
	return func(p *domain.Project) {
		p.Terms.ExpectedHours = &h
	}
}

func WithRates(platformFee, tax float64) ProjectOption {
	return func(p *domain.Project) {
		p.Terms.PlatformFeeRate = platformFee
		p.Terms.TaxRate = tax
	}
}

func WithAgreedRevisions(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Terms.AgreedRevisionCount = &n
	}
}

func WithProgress(pct int) ProjectOption {
	return func(p *domain.Project) {
		p.ProgressPercent = pct
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Aliases:   []string{},
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TimeEntry options
type TimeEntryOption func(*domain.TimeEntry)

func WithDate(date string) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.Date = date
	}
}

func WithCategory(c domain.Category) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.Category = c
	}
}

func WithIntent(i domain.Intent) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.Intent = i
	}
}

func WithDescription(d string) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.Description = d
	}
}

func WithStartedAt(t time.Time) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.StartedAt = &t
	}
}

func WithCreatedAt(t time.Time) TimeEntryOption {
	return func(e *domain.TimeEntry) {
		e.CreatedAt = t
	}
}

func NewTestTimeEntry(projectID string, minutes int, opts ...TimeEntryOption) *domain.TimeEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.TimeEntry{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Date:      now.Format("2006-01-02"),
		Minutes:   minutes,
		Category:  domain.CategoryDevelopment,
		Intent:    domain.IntentDone,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestCostEntry(projectID string, amount float64, costType domain.CostType) *domain.CostEntry {
	return &domain.CostEntry{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Amount:    amount,
		CostType:  costType,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
