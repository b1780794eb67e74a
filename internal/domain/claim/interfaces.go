package claim

import (
	"context"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ActiveClaimRepository provides persistence for active claims. Create must
// reject a duplicate case number with repository.ErrDuplicate; the store
// enforces uniqueness so racing claims can't both succeed.
type ActiveClaimRepository interface {
	Create(ctx context.Context, c *ActiveClaim) error
	GetByCaseNum(ctx context.Context, casenum string) (*ActiveClaim, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]ActiveClaim, error)
}

// CompleteClaimRepository provides persistence for completed claims.
type CompleteClaimRepository interface {
	Create(ctx context.Context, c *CompleteClaim) error
	Get(ctx context.Context, id string) (*CompleteClaim, error)
	GetByCaseNum(ctx context.Context, casenum string) (*CompleteClaim, error)
	SetLead(ctx context.Context, id, lead string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]CompleteClaim, error)
}

// ReviewedClaimRepository provides persistence for reviewed claims.
type ReviewedClaimRepository interface {
	Create(ctx context.Context, c *ReviewedClaim) error
	Get(ctx context.Context, id string) (*ReviewedClaim, error)
	UpdateStatus(ctx context.Context, id string, status ReviewStatus, acknowledgeComment *string) error
	List(ctx context.Context) ([]ReviewedClaim, error)
	ListByCaseNum(ctx context.Context, casenum string, newestFirst bool) ([]ReviewedClaim, error)
	ListByTech(ctx context.Context, tech string, statuses []ReviewStatus) ([]ReviewedClaim, error)
	ListSince(ctx context.Context, since time.Time) ([]ReviewedClaim, error)
}

// UserDirectory resolves user accounts for ownership and targeting checks.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
}
