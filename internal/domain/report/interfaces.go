package report

import (
	"context"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ClaimFilter narrows active/complete claim counts.
type ClaimFilter struct {
	User  string
	Since *time.Time
}

// ReviewFilter narrows reviewed claim counts.
type ReviewFilter struct {
	Tech     string
	Lead     string
	Statuses []claim.ReviewStatus
	Since    *time.Time
	Until    *time.Time
}

// Repository provides the aggregate count queries the rollups are built from.
type Repository interface {
	CountActive(ctx context.Context, f ClaimFilter) (int, error)
	CountComplete(ctx context.Context, f ClaimFilter) (int, error)
	CountReviewed(ctx context.Context, f ReviewFilter) (int, error)
	StatusBreakdown(ctx context.Context, f ReviewFilter) (map[claim.ReviewStatus]int, error)
	TopTechs(ctx context.Context, f ReviewFilter, limit int) ([]TechRank, error)
	TopLeads(ctx context.Context, f ReviewFilter, limit int) ([]LeadRank, error)
}

// UserDirectory resolves users for per-user stats.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
}
