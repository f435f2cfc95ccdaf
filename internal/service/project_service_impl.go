package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, projectNotFound(id, err)
	}
	return p, nil
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrProjectNotFound)
	}
	all, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, err
	}

	var byPrefix, byName []*domain.Project
	for _, p := range all {
		if p.ID == ref {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			byPrefix = append(byPrefix, p)
		}
		if strings.EqualFold(p.Name, ref) {
			byName = append(byName, p)
		}
	}
	for _, hits := range [][]*domain.Project{byPrefix, byName} {
		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0], nil
		default:
			return nil, fmt.Errorf("%w: %q matches %d projects", ErrAmbiguousProject, ref, len(hits))
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, ref)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return projectNotFound(p.ID, s.projects.Update(ctx, p))
}

func (s *projectService) SetProgress(ctx context.Context, id string, pct int) (*domain.Project, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.SetProgress(pct, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return projectNotFound(id, s.projects.Archive(ctx, id))
}

func (s *projectService) ListForMatching(ctx context.Context) ([]domain.ProjectForMatching, error) {
	active, err := s.projects.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return forMatching(active), nil
}
