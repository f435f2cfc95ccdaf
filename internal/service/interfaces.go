package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intelligence"
	"github.com/alexanderramin/tally/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve finds a project by full id, display id prefix, or exact name.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SetProgress(ctx context.Context, id string, pct int) (*domain.Project, error)
	Archive(ctx context.Context, id string) error
	ListForMatching(ctx context.Context) ([]domain.ProjectForMatching, error)
}

type EntryService interface {
	// ParseText sends free text to the LLM and normalizes the reply.
	ParseText(ctx context.Context, text string) (*Draft, error)
	// Normalize runs an already-structured payload through the pipeline.
	Normalize(ctx context.Context, payload *intelligence.Payload) (*Draft, error)
	// SaveDraft persists every entry of the draft, or none.
	SaveDraft(ctx context.Context, draft *Draft) ([]*domain.TimeEntry, error)
	List(ctx context.Context, rng repository.EntryRange) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type CostService interface {
	Add(ctx context.Context, c *domain.CostEntry) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.CostEntry, error)
	Delete(ctx context.Context, id string) error
}

type HealthService interface {
	ProjectHealth(ctx context.Context, projectID string) (*ProjectHealth, error)
	DismissAlert(ctx context.Context, id string) error
}

type ReviewService interface {
	Timesheet(ctx context.Context, from, to string) (*Timesheet, error)
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	SetTimezone(ctx context.Context, tz string) error
	// SetPreferredProject stores the fallback project. An empty id clears it.
	SetPreferredProject(ctx context.Context, projectID string) error
}
