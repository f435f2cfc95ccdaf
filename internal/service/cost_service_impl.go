package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/google/uuid"
)

type costService struct {
	projects repository.ProjectRepo
	costs    repository.CostEntryRepo
}

func NewCostService(projects repository.ProjectRepo, costs repository.CostEntryRepo) CostService {
	return &costService{projects: projects, costs: costs}
}

func (s *costService) Add(ctx context.Context, c *domain.CostEntry) error {
	if !domain.ValidCostTypes[c.CostType] {
		return fmt.Errorf("unknown cost type %q", c.CostType)
	}
	if c.Amount < 0 {
		return fmt.Errorf("cost amount must be >= 0, got %v", c.Amount)
	}
	if _, err := s.projects.GetByID(ctx, c.ProjectID); err != nil {
		return projectNotFound(c.ProjectID, err)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	return s.costs.Create(ctx, c)
}

func (s *costService) ListByProject(ctx context.Context, projectID string) ([]*domain.CostEntry, error) {
	return s.costs.ListByProject(ctx, projectID)
}

func (s *costService) Delete(ctx context.Context, id string) error {
	return s.costs.SoftDelete(ctx, id)
}
