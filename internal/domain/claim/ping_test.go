package claim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
	"github.com/mwhitford/caseflow/internal/repository/mocks"
)

func newPingService(reviewed *mocks.ReviewedClaimRepository, users *mocks.UserDirectory) *claim.Service {
	return claim.NewService(&mocks.ActiveClaimRepository{}, &mocks.CompleteClaimRepository{}, reviewed, users, nil, nil)
}

func TestAcknowledge(t *testing.T) {
	ctx := context.Background()
	pinged := &claim.ReviewedClaim{ID: "rc1", CaseNum: "70012345", Tech: "alice", Status: claim.StatusPingedMed}

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("Get", ctx, "rc1").Return(pinged, nil)
	reviewed.On("UpdateStatus", ctx, "rc1", claim.StatusAcknowledged, mock.Anything).Return(nil)

	svc := newPingService(reviewed, &mocks.UserDirectory{})

	updated, err := svc.Acknowledge(ctx, tech("alice"), "rc1", "root cause noted")
	require.NoError(t, err)
	require.Equal(t, claim.StatusAcknowledged, updated.Status)
	require.Equal(t, "root cause noted", updated.AcknowledgeComment)
}

func TestAcknowledge_NotPinged(t *testing.T) {
	ctx := context.Background()

	for _, status := range []claim.ReviewStatus{claim.StatusChecked, claim.StatusDone, claim.StatusKudos, claim.StatusAcknowledged, claim.StatusResolved} {
		reviewed := &mocks.ReviewedClaimRepository{}
		reviewed.On("Get", ctx, "rc1").Return(&claim.ReviewedClaim{ID: "rc1", Tech: "alice", Status: status}, nil)

		svc := newPingService(reviewed, &mocks.UserDirectory{})

		_, err := svc.Acknowledge(ctx, tech("alice"), "rc1", "c")
		require.ErrorIs(t, err, claim.ErrNotPinged, "status %s", status)
	}
}

func TestAcknowledge_OnlyOwningTech(t *testing.T) {
	ctx := context.Background()
	pinged := &claim.ReviewedClaim{ID: "rc1", Tech: "alice", Status: claim.StatusPingedHigh}

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("Get", ctx, "rc1").Return(pinged, nil)

	svc := newPingService(reviewed, &mocks.UserDirectory{})

	// Even a manager cannot acknowledge on the tech's behalf.
	manager := &user.User{ID: "id-dan", Username: "dan", Roles: []user.Role{user.RoleManager}}
	_, err := svc.Acknowledge(ctx, manager, "rc1", "c")
	require.ErrorIs(t, err, claim.ErrNotOwner)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	acked := &claim.ReviewedClaim{ID: "rc1", Tech: "alice", Status: claim.StatusAcknowledged}

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("Get", ctx, "rc1").Return(acked, nil)
	reviewed.On("UpdateStatus", ctx, "rc1", claim.StatusResolved, (*string)(nil)).Return(nil)

	svc := newPingService(reviewed, &mocks.UserDirectory{})

	updated, err := svc.Resolve(ctx, "rc1")
	require.NoError(t, err)
	require.Equal(t, claim.StatusResolved, updated.Status)
}

func TestResolve_RequiresAcknowledged(t *testing.T) {
	ctx := context.Background()

	for _, status := range []claim.ReviewStatus{claim.StatusPingedLow, claim.StatusPingedMed, claim.StatusPingedHigh, claim.StatusResolved, claim.StatusChecked} {
		reviewed := &mocks.ReviewedClaimRepository{}
		reviewed.On("Get", ctx, "rc1").Return(&claim.ReviewedClaim{ID: "rc1", Status: status}, nil)

		svc := newPingService(reviewed, &mocks.UserDirectory{})

		_, err := svc.Resolve(ctx, "rc1")
		require.ErrorIs(t, err, claim.ErrNotAcknowledged, "status %s", status)
	}
}

func TestCreatePing(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, "id-alice").Return(tech("alice"), nil)

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("Create", ctx, mock.Anything).Return(nil)

	svc := newPingService(reviewed, users)

	rec, err := svc.CreatePing(ctx, lead("carol"), "70012345", "id-alice", claim.StatusPingedHigh, "missed escalation")
	require.NoError(t, err)
	require.Equal(t, "alice", rec.Tech)
	require.Equal(t, "carol", rec.Lead)
	require.Equal(t, claim.StatusPingedHigh, rec.Status)
	require.Equal(t, rec.ClaimTime, rec.CompleteTime)
	require.Equal(t, rec.ClaimTime, rec.ReviewTime)
}

func TestCreatePing_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newPingService(&mocks.ReviewedClaimRepository{}, &mocks.UserDirectory{})

	_, err := svc.CreatePing(ctx, lead("carol"), "short", "id-alice", claim.StatusPingedLow, "c")
	require.ErrorIs(t, err, claim.ErrInvalidCaseNum)

	_, err = svc.CreatePing(ctx, lead("carol"), "70012345", "id-alice", claim.StatusKudos, "c")
	require.ErrorIs(t, err, claim.ErrInvalidStatus)

	_, err = svc.CreatePing(ctx, lead("carol"), "70012345", "id-alice", claim.StatusPingedLow, "")
	require.ErrorIs(t, err, claim.ErrMissingComment)
}

func TestCreatePing_TechNotFound(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := newPingService(&mocks.ReviewedClaimRepository{}, users)

	_, err := svc.CreatePing(ctx, lead("carol"), "70012345", "missing", claim.StatusPingedLow, "c")
	require.ErrorIs(t, err, claim.ErrTechNotFound)
}

func TestPingsForUser_Self(t *testing.T) {
	ctx := context.Background()
	alice := tech("alice")

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, alice.ID).Return(alice, nil)

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("ListByTech", ctx, "alice", mock.Anything).Return([]claim.ReviewedClaim{
		{ID: "rc1", Status: claim.StatusPingedLow},
		{ID: "rc2", Status: claim.StatusResolved},
	}, nil)

	svc := newPingService(reviewed, users)

	pings, err := svc.PingsForUser(ctx, alice, alice.ID)
	require.NoError(t, err)
	require.Len(t, pings, 2)
}

func TestPingsForUser_OtherTechDenied(t *testing.T) {
	ctx := context.Background()
	alice := tech("alice")

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, alice.ID).Return(alice, nil)

	svc := newPingService(&mocks.ReviewedClaimRepository{}, users)

	_, err := svc.PingsForUser(ctx, tech("bob"), alice.ID)
	require.ErrorIs(t, err, claim.ErrNotOwner)
}

func TestPingsForUser_LeadAllowed(t *testing.T) {
	ctx := context.Background()
	alice := tech("alice")

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, alice.ID).Return(alice, nil)

	reviewed := &mocks.ReviewedClaimRepository{}
	reviewed.On("ListByTech", ctx, "alice", mock.Anything).Return([]claim.ReviewedClaim{}, nil)

	svc := newPingService(reviewed, users)

	_, err := svc.PingsForUser(ctx, lead("carol"), alice.ID)
	require.NoError(t, err)
}
