package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/repository"
)

// ReviewedClaimRepository implements claim.ReviewedClaimRepository for SQLite
type ReviewedClaimRepository struct {
	db *DB
}

// NewReviewedClaimRepository creates a new ReviewedClaimRepository
func NewReviewedClaimRepository(db *DB) *ReviewedClaimRepository {
	return &ReviewedClaimRepository{db: db}
}

const reviewedColumns = `id, casenum, tech, lead, claim_time, complete_time, review_time, status, comment, acknowledge_comment`

// Create inserts a reviewed claim
func (r *ReviewedClaimRepository) Create(ctx context.Context, c *claim.ReviewedClaim) error {
	query := `
		INSERT INTO reviewed_claims (` + reviewedColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.CaseNum, c.Tech, c.Lead,
		c.ClaimTime, c.CompleteTime, c.ReviewTime,
		c.Status, c.Comment, c.AcknowledgeComment,
	)
	if err != nil {
		return fmt.Errorf("failed to create reviewed claim: %w", err)
	}
	return nil
}

// Get retrieves a reviewed claim by ID
func (r *ReviewedClaimRepository) Get(ctx context.Context, id string) (*claim.ReviewedClaim, error) {
	query := `SELECT ` + reviewedColumns + ` FROM reviewed_claims WHERE id = ?`

	var c claim.ReviewedClaim
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CaseNum, &c.Tech, &c.Lead,
		&c.ClaimTime, &c.CompleteTime, &c.ReviewTime,
		&c.Status, &c.Comment, &c.AcknowledgeComment,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewed claim: %w", err)
	}
	return &c, nil
}

// UpdateStatus mutates the status in place; the acknowledge comment is only
// written when provided (ping-acknowledge carries one, resolve doesn't).
func (r *ReviewedClaimRepository) UpdateStatus(ctx context.Context, id string, status claim.ReviewStatus, acknowledgeComment *string) error {
	var (
		result sql.Result
		err    error
	)
	if acknowledgeComment != nil {
		result, err = r.db.ExecContext(ctx,
			`UPDATE reviewed_claims SET status = ?, acknowledge_comment = ? WHERE id = ?`,
			status, *acknowledgeComment, id)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE reviewed_claims SET status = ? WHERE id = ?`,
			status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update reviewed claim: %w", err)
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

// List returns all reviewed claims, newest review first
func (r *ReviewedClaimRepository) List(ctx context.Context) ([]claim.ReviewedClaim, error) {
	query := `SELECT ` + reviewedColumns + ` FROM reviewed_claims ORDER BY review_time DESC`
	return r.query(ctx, query)
}

// ListByCaseNum returns all reviews of one case in review-time order
func (r *ReviewedClaimRepository) ListByCaseNum(ctx context.Context, casenum string, newestFirst bool) ([]claim.ReviewedClaim, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `SELECT ` + reviewedColumns + ` FROM reviewed_claims WHERE casenum = ? ORDER BY review_time ` + order
	return r.query(ctx, query, casenum)
}

// ListByTech returns a tech's reviewed claims, optionally filtered by status
func (r *ReviewedClaimRepository) ListByTech(ctx context.Context, tech string, statuses []claim.ReviewStatus) ([]claim.ReviewedClaim, error) {
	query := `SELECT ` + reviewedColumns + ` FROM reviewed_claims WHERE tech = ?`
	args := []any{tech}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ","))
	}
	query += " ORDER BY review_time DESC"

	return r.query(ctx, query, args...)
}

// ListSince returns reviewed claims reviewed at or after the given time
func (r *ReviewedClaimRepository) ListSince(ctx context.Context, since time.Time) ([]claim.ReviewedClaim, error) {
	query := `SELECT ` + reviewedColumns + ` FROM reviewed_claims WHERE review_time >= ? ORDER BY review_time DESC`
	return r.query(ctx, query, since)
}

func (r *ReviewedClaimRepository) query(ctx context.Context, query string, args ...any) ([]claim.ReviewedClaim, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed claims: %w", err)
	}
	defer rows.Close()

	var claims []claim.ReviewedClaim
	for rows.Next() {
		var c claim.ReviewedClaim
		err := rows.Scan(
			&c.ID, &c.CaseNum, &c.Tech, &c.Lead,
			&c.ClaimTime, &c.CompleteTime, &c.ReviewTime,
			&c.Status, &c.Comment, &c.AcknowledgeComment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviewed claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviewed claim rows: %w", err)
	}
	return claims, nil
}
