package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/repository"
)

// CompleteClaimRepository implements claim.CompleteClaimRepository for SQLite
type CompleteClaimRepository struct {
	db *DB
}

// NewCompleteClaimRepository creates a new CompleteClaimRepository
func NewCompleteClaimRepository(db *DB) *CompleteClaimRepository {
	return &CompleteClaimRepository{db: db}
}

// Create inserts a complete claim
func (r *CompleteClaimRepository) Create(ctx context.Context, c *claim.CompleteClaim) error {
	query := `
		INSERT INTO complete_claims (id, casenum, user, lead, claim_time, complete_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.CaseNum, c.User, c.Lead, c.ClaimTime, c.CompleteTime)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create complete claim: %w", err)
	}
	return nil
}

// Get retrieves a complete claim by ID
func (r *CompleteClaimRepository) Get(ctx context.Context, id string) (*claim.CompleteClaim, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

// GetByCaseNum retrieves a complete claim by case number
func (r *CompleteClaimRepository) GetByCaseNum(ctx context.Context, casenum string) (*claim.CompleteClaim, error) {
	return r.getOne(ctx, `WHERE casenum = ?`, casenum)
}

func (r *CompleteClaimRepository) getOne(ctx context.Context, where string, arg any) (*claim.CompleteClaim, error) {
	query := `SELECT id, casenum, user, lead, claim_time, complete_time FROM complete_claims ` + where

	var c claim.CompleteClaim
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.CaseNum, &c.User, &c.Lead, &c.ClaimTime, &c.CompleteTime,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complete claim: %w", err)
	}
	return &c, nil
}

// SetLead assigns the reviewing lead. Last writer wins; reassignment between
// leads needs no lock.
func (r *CompleteClaimRepository) SetLead(ctx context.Context, id, lead string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE complete_claims SET lead = ? WHERE id = ?`, lead, id)
	if err != nil {
		return fmt.Errorf("failed to set lead: %w", err)
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

// Delete removes a complete claim
func (r *CompleteClaimRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM complete_claims WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete complete claim: %w", err)
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

// List returns all complete claims, oldest completion first
func (r *CompleteClaimRepository) List(ctx context.Context) ([]claim.CompleteClaim, error) {
	query := `SELECT id, casenum, user, lead, claim_time, complete_time FROM complete_claims ORDER BY complete_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list complete claims: %w", err)
	}
	defer rows.Close()

	var claims []claim.CompleteClaim
	for rows.Next() {
		var c claim.CompleteClaim
		if err := rows.Scan(&c.ID, &c.CaseNum, &c.User, &c.Lead, &c.ClaimTime, &c.CompleteTime); err != nil {
			return nil, fmt.Errorf("failed to scan complete claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complete claim rows: %w", err)
	}
	return claims, nil
}
