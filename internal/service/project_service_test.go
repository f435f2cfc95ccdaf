package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_Defaults(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := &domain.Project{Name: "Acme Landing", Aliases: []string{"acme"}}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, domain.ProjectActive, proj.Status, "status should default to active")

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Landing", fetched.Name)
}

func TestProjectService_Create_Invalid(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	tests := []struct {
		name string
		proj *domain.Project
	}{
		{"blank name", &domain.Project{Name: "  "}},
		{"negative fee", &domain.Project{Name: "x", Terms: domain.ProjectCommercialTerms{ExpectedFee: -1}}},
		{"tax above one", &domain.Project{Name: "x", Terms: domain.ProjectCommercialTerms{TaxRate: 1.5}}},
		{"progress above 100", &domain.Project{Name: "x", ProgressPercent: 101}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.Create(context.Background(), tc.proj))
		})
	}
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	r := setupRepos(t)
	_, err := NewProjectService(r.projects).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_Resolve(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	acme := testutil.NewTestProject("Acme")
	beta := testutil.NewTestProject("Beta")
	require.NoError(t, r.projects.Create(ctx, acme))
	require.NoError(t, r.projects.Create(ctx, beta))

	got, err := svc.Resolve(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, acme.ID, got.ID)

	got, err = svc.Resolve(ctx, beta.DisplayID())
	require.NoError(t, err)
	assert.Equal(t, beta.ID, got.ID)

	got, err = svc.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, got.ID, "name match is case-insensitive")

	_, err = svc.Resolve(ctx, "gamma")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_Resolve_AmbiguousName(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject("Same")))
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject("same")))

	_, err := NewProjectService(r.projects).Resolve(ctx, "SAME")
	assert.ErrorIs(t, err, ErrAmbiguousProject)
}

func TestProjectService_SetProgress(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)
	proj := testutil.NewTestProject("P")
	require.NoError(t, r.projects.Create(ctx, proj))

	updated, err := svc.SetProgress(ctx, proj.ID, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.ProgressPercent)

	_, err = svc.SetProgress(ctx, proj.ID, 101)
	assert.Error(t, err)

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, fetched.ProgressPercent, "rejected update leaves progress unchanged")
}

func TestProjectService_ListForMatching_ActiveOnly(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	active := testutil.NewTestProject("Active", testutil.WithAliases("act"), testutil.WithClient("Acme"))
	archived := testutil.NewTestProject("Old")
	require.NoError(t, r.projects.Create(ctx, active))
	require.NoError(t, r.projects.Create(ctx, archived))
	require.NoError(t, svc.Archive(ctx, archived.ID))

	list, err := svc.ListForMatching(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)
	assert.Equal(t, []string{"act"}, list[0].Aliases)
	require.NotNil(t, list[0].ClientName)
	assert.Equal(t, "Acme", *list[0].ClientName)
}
