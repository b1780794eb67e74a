package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/repository"
)

// ParentCaseRepository implements parentcase.Repository for SQLite
type ParentCaseRepository struct {
	db *DB
}

// NewParentCaseRepository creates a new ParentCaseRepository
func NewParentCaseRepository(db *DB) *ParentCaseRepository {
	return &ParentCaseRepository{db: db}
}

// Create inserts a parent case
func (r *ParentCaseRepository) Create(ctx context.Context, pc *parentcase.ParentCase) error {
	query := `
		INSERT INTO parent_cases (id, case_number, description, solution, active, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		pc.ID, pc.CaseNumber, pc.Description, pc.Solution, pc.Active, pc.CreatedBy, pc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create parent case: %w", err)
	}
	return nil
}

// Get retrieves a parent case by ID
func (r *ParentCaseRepository) Get(ctx context.Context, id string) (*parentcase.ParentCase, error) {
	query := `SELECT id, case_number, description, solution, active, created_by, created_at FROM parent_cases WHERE id = ?`

	var pc parentcase.ParentCase
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pc.ID, &pc.CaseNumber, &pc.Description, &pc.Solution, &pc.Active, &pc.CreatedBy, &pc.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent case: %w", err)
	}
	return &pc, nil
}

// Update rewrites a parent case's mutable fields
func (r *ParentCaseRepository) Update(ctx context.Context, pc *parentcase.ParentCase) error {
	query := `UPDATE parent_cases SET description = ?, solution = ?, active = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, pc.Description, pc.Solution, pc.Active, pc.ID)
	if err != nil {
		return fmt.Errorf("failed to update parent case: %w", err)
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

// ListActive returns all active parent cases, newest first
func (r *ParentCaseRepository) ListActive(ctx context.Context) ([]parentcase.ParentCase, error) {
	query := `
		SELECT id, case_number, description, solution, active, created_by, created_at
		FROM parent_cases
		WHERE active = 1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parent cases: %w", err)
	}
	defer rows.Close()

	var cases []parentcase.ParentCase
	for rows.Next() {
		var pc parentcase.ParentCase
		err := rows.Scan(&pc.ID, &pc.CaseNumber, &pc.Description, &pc.Solution, &pc.Active, &pc.CreatedBy, &pc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parent case: %w", err)
		}
		cases = append(cases, pc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parent case rows: %w", err)
	}
	return cases, nil
}
