package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Timesheet_GroupsFlagsByEntry(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("P")
	require.NoError(t, r.projects.Create(ctx, proj))

	created := testNow
	saturday := testutil.NewTestTimeEntry(proj.ID, 90, testutil.WithDate("2026-02-07"), testutil.WithCreatedAt(created))
	marathon := testutil.NewTestTimeEntry(proj.ID, 480, testutil.WithDate("2026-02-09"), testutil.WithCreatedAt(created))
	late := testutil.NewTestTimeEntry(proj.ID, 30, testutil.WithDate("2026-02-02"),
		testutil.WithCreatedAt(created),
		testutil.WithStartedAt(time.Date(2026, 2, 2, 23, 30, 0, 0, time.UTC)))
	outside := testutil.NewTestTimeEntry(proj.ID, 480, testutil.WithDate("2026-01-15"), testutil.WithCreatedAt(created))
	for _, e := range []*domain.TimeEntry{saturday, marathon, late, outside} {
		require.NoError(t, r.entries.Create(ctx, e))
	}

	sheet, err := NewReviewService(r.entries, r.profiles, fixedClock("UTC")).Timesheet(ctx, "2026-02-01", "2026-02-10")
	require.NoError(t, err)

	assert.Len(t, sheet.Entries, 3)
	assert.Equal(t, 600, sheet.TotalMinutes)

	flagTypes := func(id string) []domain.FlagType {
		var out []domain.FlagType
		for _, f := range sheet.Flags[id] {
			out = append(out, f.FlagType)
		}
		return out
	}
	assert.Equal(t, []domain.FlagType{domain.FlagWeekendWork}, flagTypes(saturday.ID))
	assert.Equal(t, []domain.FlagType{domain.FlagLongSession}, flagTypes(marathon.ID))
	assert.Equal(t, []domain.FlagType{domain.FlagLateNight, domain.FlagBackdated}, flagTypes(late.ID))
	assert.Empty(t, sheet.Flags[outside.ID])
	assert.Equal(t, 4, sheet.FlagCount)
}

func TestReviewService_Timesheet_InvalidRange(t *testing.T) {
	r := setupRepos(t)
	svc := NewReviewService(r.entries, r.profiles, fixedClock("UTC"))
	ctx := context.Background()

	_, err := svc.Timesheet(ctx, "2026-02-10", "2026-02-01")
	assert.Error(t, err)
	_, err = svc.Timesheet(ctx, "02/01", "2026-02-10")
	assert.Error(t, err)
}

func TestReviewService_Timesheet_LateNightInProfileZone(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("P")
	require.NoError(t, r.projects.Create(ctx, proj))
	// 23:30 in Seoul, mid-afternoon in UTC.
	e := testutil.NewTestTimeEntry(proj.ID, 30, testutil.WithDate("2026-02-09"),
		testutil.WithCreatedAt(testNow),
		testutil.WithStartedAt(time.Date(2026, 2, 9, 14, 30, 0, 0, time.UTC)))
	require.NoError(t, r.entries.Create(ctx, e))

	hasLateNight := func(sheet *Timesheet) bool {
		for _, f := range sheet.Flags[e.ID] {
			if f.FlagType == domain.FlagLateNight {
				return true
			}
		}
		return false
	}

	seoul, err := NewReviewService(r.entries, r.profiles, fixedClock("Asia/Seoul")).Timesheet(ctx, "2026-02-01", "2026-02-10")
	require.NoError(t, err)
	assert.True(t, hasLateNight(seoul))

	utc, err := NewReviewService(r.entries, r.profiles, fixedClock("UTC")).Timesheet(ctx, "2026-02-01", "2026-02-10")
	require.NoError(t, err)
	assert.False(t, hasLateNight(utc))
}
