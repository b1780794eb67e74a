package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/notify"
)

// ActiveClaimRepository is a mock for claim.ActiveClaimRepository.
type ActiveClaimRepository struct {
	mock.Mock
}

func (m *ActiveClaimRepository) Create(ctx context.Context, c *claim.ActiveClaim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ActiveClaimRepository) GetByCaseNum(ctx context.Context, casenum string) (*claim.ActiveClaim, error) {
	args := m.Called(ctx, casenum)
	if c, ok := args.Get(0).(*claim.ActiveClaim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActiveClaimRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ActiveClaimRepository) List(ctx context.Context) ([]claim.ActiveClaim, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]claim.ActiveClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CompleteClaimRepository is a mock for claim.CompleteClaimRepository.
type CompleteClaimRepository struct {
	mock.Mock
}

func (m *CompleteClaimRepository) Create(ctx context.Context, c *claim.CompleteClaim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CompleteClaimRepository) Get(ctx context.Context, id string) (*claim.CompleteClaim, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*claim.CompleteClaim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompleteClaimRepository) GetByCaseNum(ctx context.Context, casenum string) (*claim.CompleteClaim, error) {
	args := m.Called(ctx, casenum)
	if c, ok := args.Get(0).(*claim.CompleteClaim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompleteClaimRepository) SetLead(ctx context.Context, id, lead string) error {
	args := m.Called(ctx, id, lead)
	return args.Error(0)
}

func (m *CompleteClaimRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CompleteClaimRepository) List(ctx context.Context) ([]claim.CompleteClaim, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]claim.CompleteClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReviewedClaimRepository is a mock for claim.ReviewedClaimRepository.
type ReviewedClaimRepository struct {
	mock.Mock
}

func (m *ReviewedClaimRepository) Create(ctx context.Context, c *claim.ReviewedClaim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ReviewedClaimRepository) Get(ctx context.Context, id string) (*claim.ReviewedClaim, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*claim.ReviewedClaim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewedClaimRepository) UpdateStatus(ctx context.Context, id string, status claim.ReviewStatus, acknowledgeComment *string) error {
	args := m.Called(ctx, id, status, acknowledgeComment)
	return args.Error(0)
}

func (m *ReviewedClaimRepository) List(ctx context.Context) ([]claim.ReviewedClaim, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]claim.ReviewedClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewedClaimRepository) ListByCaseNum(ctx context.Context, casenum string, newestFirst bool) ([]claim.ReviewedClaim, error) {
	args := m.Called(ctx, casenum, newestFirst)
	if list, ok := args.Get(0).([]claim.ReviewedClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewedClaimRepository) ListByTech(ctx context.Context, tech string, statuses []claim.ReviewStatus) ([]claim.ReviewedClaim, error) {
	args := m.Called(ctx, tech, statuses)
	if list, ok := args.Get(0).([]claim.ReviewedClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewedClaimRepository) ListSince(ctx context.Context, since time.Time) ([]claim.ReviewedClaim, error) {
	args := m.Called(ctx, since)
	if list, ok := args.Get(0).([]claim.ReviewedClaim); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserDirectory is a mock for the per-domain user directory interfaces.
type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// Publisher records published events for assertions.
type Publisher struct {
	Events []notify.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event notify.Event) error {
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) AddRole(ctx context.Context, userID string, role user.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// TokenRepository is a mock for user.TokenRepository.
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Save(ctx context.Context, tokenHash, userID string) error {
	args := m.Called(ctx, tokenHash, userID)
	return args.Error(0)
}

func (m *TokenRepository) Resolve(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

// ParentCaseRepository is a mock for parentcase.Repository.
type ParentCaseRepository struct {
	mock.Mock
}

func (m *ParentCaseRepository) Create(ctx context.Context, pc *parentcase.ParentCase) error {
	args := m.Called(ctx, pc)
	return args.Error(0)
}

func (m *ParentCaseRepository) Get(ctx context.Context, id string) (*parentcase.ParentCase, error) {
	args := m.Called(ctx, id)
	if pc, ok := args.Get(0).(*parentcase.ParentCase); ok {
		return pc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ParentCaseRepository) Update(ctx context.Context, pc *parentcase.ParentCase) error {
	args := m.Called(ctx, pc)
	return args.Error(0)
}

func (m *ParentCaseRepository) ListActive(ctx context.Context) ([]parentcase.ParentCase, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]parentcase.ParentCase); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EvaluationRepository is a mock for evaluation.Repository and
// evaluation.ReviewStats.
type EvaluationRepository struct {
	mock.Mock
}

func (m *EvaluationRepository) Create(ctx context.Context, ev *evaluation.Evaluation) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EvaluationRepository) Get(ctx context.Context, id string) (*evaluation.Evaluation, error) {
	args := m.Called(ctx, id)
	if ev, ok := args.Get(0).(*evaluation.Evaluation); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EvaluationRepository) Update(ctx context.Context, ev *evaluation.Evaluation) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EvaluationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EvaluationRepository) List(ctx context.Context) ([]evaluation.Evaluation, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]evaluation.Evaluation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EvaluationRepository) ListForTech(ctx context.Context, tech string) ([]evaluation.Evaluation, error) {
	args := m.Called(ctx, tech)
	if list, ok := args.Get(0).([]evaluation.Evaluation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EvaluationRepository) CountReviewedForTech(ctx context.Context, tech string, start, end time.Time, statuses []claim.ReviewStatus) (int, error) {
	args := m.Called(ctx, tech, start, end, statuses)
	return args.Int(0), args.Error(1)
}

// ReportRepository is a mock for report.Repository.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) CountActive(ctx context.Context, f report.ClaimFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepository) CountComplete(ctx context.Context, f report.ClaimFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepository) CountReviewed(ctx context.Context, f report.ReviewFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *ReportRepository) StatusBreakdown(ctx context.Context, f report.ReviewFilter) (map[claim.ReviewStatus]int, error) {
	args := m.Called(ctx, f)
	if breakdown, ok := args.Get(0).(map[claim.ReviewStatus]int); ok {
		return breakdown, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) TopTechs(ctx context.Context, f report.ReviewFilter, limit int) ([]report.TechRank, error) {
	args := m.Called(ctx, f, limit)
	if ranks, ok := args.Get(0).([]report.TechRank); ok {
		return ranks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) TopLeads(ctx context.Context, f report.ReviewFilter, limit int) ([]report.LeadRank, error) {
	args := m.Called(ctx, f, limit)
	if ranks, ok := args.Get(0).([]report.LeadRank); ok {
		return ranks, args.Error(1)
	}
	return nil, args.Error(1)
}
