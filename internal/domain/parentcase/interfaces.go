package parentcase

import "context"

// Repository provides persistence for parent cases. Create must reject a
// duplicate case number with repository.ErrDuplicate.
type Repository interface {
	Create(ctx context.Context, pc *ParentCase) error
	Get(ctx context.Context, id string) (*ParentCase, error)
	Update(ctx context.Context, pc *ParentCase) error
	ListActive(ctx context.Context) ([]ParentCase, error)
}
