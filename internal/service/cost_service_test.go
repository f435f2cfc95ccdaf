package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostService_AddListDelete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewCostService(r.projects, r.costs)
	proj := testutil.NewTestProject("P")
	require.NoError(t, r.projects.Create(ctx, proj))

	cost := &domain.CostEntry{ProjectID: proj.ID, Amount: 12_000, CostType: domain.CostFixed, Memo: "stock photos"}
	require.NoError(t, svc.Add(ctx, cost))
	assert.NotEmpty(t, cost.ID)

	list, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "stock photos", list[0].Memo)

	require.NoError(t, svc.Delete(ctx, cost.ID))
	list, err = svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCostService_Add_Validation(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewCostService(r.projects, r.costs)
	proj := testutil.NewTestProject("P")
	require.NoError(t, r.projects.Create(ctx, proj))

	assert.Error(t, svc.Add(ctx, &domain.CostEntry{ProjectID: proj.ID, Amount: 1, CostType: "misc"}))
	assert.Error(t, svc.Add(ctx, &domain.CostEntry{ProjectID: proj.ID, Amount: -1, CostType: domain.CostFixed}))
	assert.ErrorIs(t, svc.Add(ctx, &domain.CostEntry{ProjectID: "missing", Amount: 1, CostType: domain.CostTax}), ErrProjectNotFound)
}
