package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and their role memberships
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	for _, role := range u.Roles {
		if err := r.AddRole(ctx, u.ID, role); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, `WHERE username = ?`, username)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `SELECT id, username, email, first_name, last_name, password_hash, created_at FROM users ` + where

	var u user.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	roles, err := r.roles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query := `SELECT id, username, email, first_name, last_name, password_hash, created_at FROM users ORDER BY username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	for i := range users {
		roles, err := r.roles(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Roles = roles
	}
	return users, nil
}

// AddRole grants a role membership, idempotently
func (r *UserRepository) AddRole(ctx context.Context, userID string, role user.Role) error {
	query := `INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

func (r *UserRepository) roles(ctx context.Context, userID string) ([]user.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	roles := []user.Role{}
	for rows.Next() {
		var role user.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}
	return roles, nil
}

// TokenRepository implements user.TokenRepository for SQLite
type TokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Save stores a token hash for a user
func (r *TokenRepository) Save(ctx context.Context, tokenHash, userID string) error {
	query := `INSERT INTO api_tokens (token_hash, user_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, tokenHash, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Resolve returns the user ID owning a token hash
func (r *TokenRepository) Resolve(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM api_tokens WHERE token_hash = ?`, tokenHash).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return userID, nil
}
