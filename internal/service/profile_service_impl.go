package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intake"
	"github.com/alexanderramin/tally/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
	projects repository.ProjectRepo
}

func NewProfileService(profiles repository.UserProfileRepo, projects repository.ProjectRepo) ProfileService {
	return &profileService{profiles: profiles, projects: projects}
}

func (s *profileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

func (s *profileService) SetTimezone(ctx context.Context, tz string) error {
	if _, err := intake.LoadTimezone(tz); err != nil {
		return err
	}
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return err
	}
	p.Timezone = strings.TrimSpace(tz)
	return s.profiles.Upsert(ctx, p)
}

func (s *profileService) SetPreferredProject(ctx context.Context, projectID string) error {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return err
	}
	if projectID == "" {
		p.PreferredProjectID = nil
		return s.profiles.Upsert(ctx, p)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return projectNotFound(projectID, err)
	}
	p.PreferredProjectID = &projectID
	return s.profiles.Upsert(ctx, p)
}
