package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/repository"
)

func newParentCase(caseNumber string) *parentcase.ParentCase {
	return &parentcase.ParentCase{
		ID:          uuid.NewString(),
		CaseNumber:  caseNumber,
		Description: "VPN cluster outage",
		Active:      true,
		CreatedBy:   "carol",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestParentCaseCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewParentCaseRepository(NewTestDB(t))

	created := newParentCase("70099999")
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "70099999", got.CaseNumber)
	require.True(t, got.Active)
	require.Nil(t, got.Solution)
}

func TestParentCaseDuplicateCaseNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewParentCaseRepository(NewTestDB(t))

	require.NoError(t, repo.Create(ctx, newParentCase("70099999")))
	require.ErrorIs(t, repo.Create(ctx, newParentCase("70099999")), repository.ErrDuplicate)
}

func TestParentCaseUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewParentCaseRepository(NewTestDB(t))

	created := newParentCase("70099999")
	require.NoError(t, repo.Create(ctx, created))

	solution := "fixed in firmware 4.2"
	created.Solution = &solution
	created.Active = false
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, solution, *got.Solution)
	require.False(t, got.Active)
}

func TestParentCaseUpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewParentCaseRepository(NewTestDB(t))

	missing := newParentCase("70099999")
	require.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestParentCaseListActive(t *testing.T) {
	ctx := context.Background()
	repo := NewParentCaseRepository(NewTestDB(t))

	visible := newParentCase("70011111")
	hidden := newParentCase("70022222")
	hidden.Active = false

	require.NoError(t, repo.Create(ctx, visible))
	require.NoError(t, repo.Create(ctx, hidden))

	cases, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.Equal(t, "70011111", cases[0].CaseNumber)
}
