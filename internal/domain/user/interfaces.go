package user

import "context"

// Repository provides persistence for users and their role memberships.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	AddRole(ctx context.Context, userID string, role Role) error
}

// TokenRepository stores issued API tokens, keyed by token hash.
type TokenRepository interface {
	Save(ctx context.Context, tokenHash, userID string) error
	Resolve(ctx context.Context, tokenHash string) (string, error)
}
