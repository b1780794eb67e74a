package evaluation

import (
	"context"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// Repository provides persistence for evaluations.
type Repository interface {
	Create(ctx context.Context, ev *Evaluation) error
	Get(ctx context.Context, id string) (*Evaluation, error)
	Update(ctx context.Context, ev *Evaluation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Evaluation, error)
	ListForTech(ctx context.Context, tech string) ([]Evaluation, error)
}

// ReviewStats counts reviewed claims for metric computation.
type ReviewStats interface {
	CountReviewedForTech(ctx context.Context, tech string, start, end time.Time, statuses []claim.ReviewStatus) (int, error)
}

// UserDirectory resolves the evaluated technician.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
}
