package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tally/internal/domain"
)

// ErrNotFound is returned (wrapped) when a row lookup finds nothing.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListActive(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
}

// EntryRange narrows a time entry listing. Empty fields are unbounded.
type EntryRange struct {
	ProjectID string
	From      string // YYYY-MM-DD inclusive
	To        string // YYYY-MM-DD inclusive
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TimeEntry, error)
	ListRange(ctx context.Context, r EntryRange) ([]*domain.TimeEntry, error)
	SoftDelete(ctx context.Context, id string) error
}

type CostEntryRepo interface {
	Create(ctx context.Context, c *domain.CostEntry) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.CostEntry, error)
	SoftDelete(ctx context.Context, id string) error
}

type ScopeAlertRepo interface {
	Create(ctx context.Context, a *domain.ScopeAlert) error
	GetActiveByProject(ctx context.Context, projectID string) (*domain.ScopeAlert, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ScopeAlert, error)
	Dismiss(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}
