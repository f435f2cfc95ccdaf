package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/finance"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/scope"
	"github.com/google/uuid"
)

// ProjectHealth is the financial and scope picture of one project.
// Alert is the project's active scope alert, if any; NewAlert reports
// whether this call created it.
type ProjectHealth struct {
	Project  *domain.Project
	Facts    domain.AggregatedTimeFacts
	Metrics  finance.Metrics
	Scope    *scope.Result
	Alert    *domain.ScopeAlert
	NewAlert bool
}

type healthService struct {
	alerts   repository.ScopeAlertRepo
	uow      db.UnitOfWork
	clock    TimeContext
	observer UseCaseObserver
}

func NewHealthService(alerts repository.ScopeAlertRepo, uow db.UnitOfWork, clock TimeContext, observers ...UseCaseObserver) HealthService {
	return &healthService{
		alerts:   alerts,
		uow:      uow,
		clock:    clock,
		observer: combineObservers(observers),
	}
}

func (s *healthService) ProjectHealth(ctx context.Context, projectID string) (health *ProjectHealth, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID}
	defer func() {
		if health != nil && health.Scope != nil {
			fields["triggered"] = len(health.Scope.Triggered)
			fields["new_alert"] = health.NewAlert
		}
		observeUseCase(ctx, s.observer, "project-health", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		txCosts := repository.NewSQLiteCostEntryRepo(tx)
		txAlerts := repository.NewSQLiteScopeAlertRepo(tx)

		project, err := txProjects.GetByID(ctx, projectID)
		if err != nil {
			return projectNotFound(projectID, err)
		}
		entries, err := txEntries.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		costs, err := txCosts.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}

		facts := domain.AggregateDone(entries)
		h := &ProjectHealth{
			Project: project,
			Facts:   facts,
			Metrics: finance.ComputeMetrics(finance.MetricsInput{
				Terms:            project.Terms,
				TotalMinutesDone: facts.TotalMinutes,
				FixedCosts:       finance.FixedCosts(costs),
			}),
		}

		h.Scope, err = scope.Evaluate(scope.Input{
			ExpectedHours:       project.Terms.ExpectedHours,
			ProgressPercent:     project.ProgressPercent,
			AgreedRevisionCount: project.Terms.AgreedRevisionCount,
			TotalMinutes:        facts.TotalMinutes,
			Entries:             facts.ItemizedEntries,
		})
		if err != nil {
			return err
		}

		active, err := txAlerts.GetActiveByProject(ctx, projectID)
		switch {
		case err == nil:
			h.Alert = active
		case !errors.Is(err, repository.ErrNotFound):
			return err
		case h.Scope != nil:
			h.Alert, err = newScopeAlert(projectID, h.Scope, s.clock.now())
			if err != nil {
				return err
			}
			if err := txAlerts.Create(ctx, h.Alert); err != nil {
				return err
			}
			h.NewAlert = true
		}

		health = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return health, nil
}

func newScopeAlert(projectID string, res *scope.Result, now time.Time) (*domain.ScopeAlert, error) {
	meta, err := json.Marshal(res.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding scope metadata: %w", err)
	}
	return &domain.ScopeAlert{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Triggers:  res.Triggered,
		Metadata:  meta,
		Status:    domain.AlertActive,
		CreatedAt: now.UTC().Truncate(time.Second),
	}, nil
}

func (s *healthService) DismissAlert(ctx context.Context, id string) error {
	return s.alerts.Dismiss(ctx, id)
}
