package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/repository"
)

// ActiveClaimRepository implements claim.ActiveClaimRepository for SQLite
type ActiveClaimRepository struct {
	db *DB
}

// NewActiveClaimRepository creates a new ActiveClaimRepository
func NewActiveClaimRepository(db *DB) *ActiveClaimRepository {
	return &ActiveClaimRepository{db: db}
}

// Create inserts an active claim. The unique index on casenum turns a racing
// duplicate into repository.ErrDuplicate.
func (r *ActiveClaimRepository) Create(ctx context.Context, c *claim.ActiveClaim) error {
	query := `
		INSERT INTO active_claims (id, casenum, user, claim_time)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.CaseNum, c.User, c.ClaimTime)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create active claim: %w", err)
	}
	return nil
}

// GetByCaseNum retrieves an active claim by case number
func (r *ActiveClaimRepository) GetByCaseNum(ctx context.Context, casenum string) (*claim.ActiveClaim, error) {
	query := `SELECT id, casenum, user, claim_time FROM active_claims WHERE casenum = ?`

	var c claim.ActiveClaim
	err := r.db.QueryRowContext(ctx, query, casenum).Scan(&c.ID, &c.CaseNum, &c.User, &c.ClaimTime)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active claim: %w", err)
	}
	return &c, nil
}

// Delete removes an active claim
func (r *ActiveClaimRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM active_claims WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete active claim: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all active claims, oldest first
func (r *ActiveClaimRepository) List(ctx context.Context) ([]claim.ActiveClaim, error) {
	query := `SELECT id, casenum, user, claim_time FROM active_claims ORDER BY claim_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active claims: %w", err)
	}
	defer rows.Close()

	var claims []claim.ActiveClaim
	for rows.Next() {
		var c claim.ActiveClaim
		if err := rows.Scan(&c.ID, &c.CaseNum, &c.User, &c.ClaimTime); err != nil {
			return nil, fmt.Errorf("failed to scan active claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active claim rows: %w", err)
	}
	return claims, nil
}
