package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/intelligence"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/testutil"
)

type testRepos struct {
	db       *sql.DB
	projects repository.ProjectRepo
	entries  repository.TimeEntryRepo
	costs    repository.CostEntryRepo
	alerts   repository.ScopeAlertRepo
	profiles repository.UserProfileRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		entries:  repository.NewSQLiteTimeEntryRepo(database),
		costs:    repository.NewSQLiteCostEntryRepo(database),
		alerts:   repository.NewSQLiteScopeAlertRepo(database),
		profiles: repository.NewSQLiteUserProfileRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

// 2026-02-10 09:00 in Seoul.
var testNow = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func fixedClock(tz string) TimeContext {
	return TimeContext{Now: func() time.Time { return testNow }, TimezoneOverride: tz}
}

// stubParser returns a fixed payload and records the context it was given.
type stubParser struct {
	payload *intelligence.Payload
	err     error
	gotText string
	gotCtx  intelligence.ParseContext
}

func (p *stubParser) Parse(_ context.Context, text string, pc intelligence.ParseContext) (*intelligence.Payload, error) {
	p.gotText = text
	p.gotCtx = pc
	if p.err != nil {
		return nil, p.err
	}
	return p.payload, nil
}

func raw(project string, date *string, minutes *int, source domain.DurationSource) domain.RawParsedEntry {
	return domain.RawParsedEntry{
		ProjectNameRaw:  project,
		TaskDescription: "work on " + project,
		Date:            date,
		DurationMinutes: minutes,
		DurationSource:  source,
		Category:        domain.CategoryDevelopment,
		Intent:          domain.IntentDone,
	}
}
