package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOverrunProject logs 32h against a 40h budget at 30% progress with six
// revision entries, two of which the contract allows.
func seedOverrunProject(t *testing.T, r testRepos) *domain.Project {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Overrun",
		testutil.WithExpectedFee(1_000_000),
		testutil.WithExpectedHours(40),
		testutil.WithRates(0.1, 0.033),
		testutil.WithAgreedRevisions(2),
		testutil.WithProgress(30),
	)
	require.NoError(t, r.projects.Create(ctx, proj))

	for i := 0; i < 6; i++ {
		require.NoError(t, r.entries.Create(ctx, testutil.NewTestTimeEntry(proj.ID, 60,
			testutil.WithCategory(domain.CategoryRevision))))
	}
	require.NoError(t, r.entries.Create(ctx, testutil.NewTestTimeEntry(proj.ID, 1440)))
	require.NoError(t, r.entries.Create(ctx, testutil.NewTestTimeEntry(proj.ID, 120)))
	require.NoError(t, r.entries.Create(ctx, testutil.NewTestTimeEntry(proj.ID, 600,
		testutil.WithIntent(domain.IntentPlanned))))

	require.NoError(t, r.costs.Create(ctx, testutil.NewTestCostEntry(proj.ID, 50_000, domain.CostFixed)))
	require.NoError(t, r.costs.Create(ctx, testutil.NewTestCostEntry(proj.ID, 99, domain.CostPlatformFee)))
	return proj
}

func TestHealthService_ProjectHealth_MetricsAndAlert(t *testing.T) {
	r := setupRepos(t)
	proj := seedOverrunProject(t, r)
	ctx := context.Background()
	svc := NewHealthService(r.alerts, r.uow, fixedClock("UTC"))

	h, err := svc.ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)

	assert.Equal(t, 1920, h.Facts.TotalMinutes, "planned entries excluded")
	assert.Len(t, h.Facts.ItemizedEntries, 8)

	m := h.Metrics
	assert.Equal(t, 1_000_000.0, m.Gross)
	assert.InDelta(t, 100_000, m.PlatformFeeAmount, 1e-6)
	assert.InDelta(t, 33_000, m.TaxAmount, 1e-6)
	assert.InDelta(t, 183_000, m.DirectCost, 1e-6, "platform_fee cost rows are not double counted")
	assert.InDelta(t, 817_000, m.Net, 1e-6)
	assert.Equal(t, 32.0, m.TotalHours)
	require.NotNil(t, m.NominalHourly)
	assert.InDelta(t, 25_000, *m.NominalHourly, 1e-6)
	require.NotNil(t, m.RealHourly)
	assert.InDelta(t, 25_531.25, *m.RealHourly, 1e-6)

	require.NotNil(t, h.Scope)
	assert.Equal(t, []domain.ScopeTrigger{domain.ScopeRule1, domain.ScopeRule3, domain.ScopeRule4}, h.Scope.Triggered)
	require.NotNil(t, h.Alert)
	assert.True(t, h.NewAlert)
	assert.Equal(t, h.Scope.Triggered, h.Alert.Triggers)
	assert.True(t, testNow.Equal(h.Alert.CreatedAt))

	var meta map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(h.Alert.Metadata, &meta))
	assert.Contains(t, meta, "scope_rule1")
	assert.NotContains(t, meta, "scope_rule2")
}

func TestHealthService_ProjectHealth_AlertRecordedOnce(t *testing.T) {
	r := setupRepos(t)
	proj := seedOverrunProject(t, r)
	ctx := context.Background()
	svc := NewHealthService(r.alerts, r.uow, fixedClock("UTC"))

	first, err := svc.ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)
	second, err := svc.ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)

	assert.False(t, second.NewAlert)
	assert.Equal(t, first.Alert.ID, second.Alert.ID)

	history, err := r.alerts.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHealthService_ProjectHealth_AlertInsertFailure(t *testing.T) {
	r := setupRepos(t)
	proj := seedOverrunProject(t, r)
	faulty := &testutil.FaultyUoW{
		DB:          r.db,
		FailOnTable: "scope_alerts",
		Err:         errors.New("disk full"),
	}
	svc := NewHealthService(r.alerts, faulty, fixedClock("UTC"))

	_, err := svc.ProjectHealth(context.Background(), proj.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, testutil.CountRows(t, r.db, "scope_alerts"))
}

func TestHealthService_DismissThenReevaluate(t *testing.T) {
	r := setupRepos(t)
	proj := seedOverrunProject(t, r)
	ctx := context.Background()
	svc := NewHealthService(r.alerts, r.uow, fixedClock("UTC"))

	first, err := svc.ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DismissAlert(ctx, first.Alert.ID))

	again, err := svc.ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, again.NewAlert, "a dismissed alert does not suppress a new one")
	assert.NotEqual(t, first.Alert.ID, again.Alert.ID)
}

func TestHealthService_ProjectHealth_Healthy(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Fine", testutil.WithExpectedFee(500_000), testutil.WithExpectedHours(10))
	require.NoError(t, r.projects.Create(ctx, proj))
	require.NoError(t, r.entries.Create(ctx, testutil.NewTestTimeEntry(proj.ID, 120)))

	h, err := NewHealthService(r.alerts, r.uow, fixedClock("UTC")).ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, h.Scope)
	assert.Nil(t, h.Alert)
	assert.False(t, h.NewAlert)
	require.NotNil(t, h.Metrics.RealHourly)
	assert.InDelta(t, 250_000, *h.Metrics.RealHourly, 1e-6)
}

func TestHealthService_ProjectHealth_NoHoursLogged(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Empty", testutil.WithExpectedFee(100))
	require.NoError(t, r.projects.Create(ctx, proj))

	h, err := NewHealthService(r.alerts, r.uow, fixedClock("UTC")).ProjectHealth(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, h.Metrics.RealHourly)
	assert.Nil(t, h.Metrics.NominalHourly)
}

func TestHealthService_ProjectHealth_UnknownProject(t *testing.T) {
	r := setupRepos(t)
	_, err := NewHealthService(r.alerts, r.uow, fixedClock("UTC")).ProjectHealth(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
