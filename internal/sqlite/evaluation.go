package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/repository"
)

// EvaluationRepository implements evaluation.Repository and
// evaluation.ReviewStats for SQLite
type EvaluationRepository struct {
	db *DB
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

const evaluationColumns = `id, tech, evaluator, period_start, period_end, cases_reviewed, quality_score,
	ping_count, kudos_count, strengths, areas_for_improvement, additional_comments, overall_rating,
	created_at, updated_at`

// Create inserts an evaluation
func (r *EvaluationRepository) Create(ctx context.Context, ev *evaluation.Evaluation) error {
	query := `
		INSERT INTO evaluations (` + evaluationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.Tech, ev.Evaluator, ev.PeriodStart, ev.PeriodEnd,
		ev.CasesReviewed, ev.QualityScore, ev.PingCount, ev.KudosCount,
		ev.Strengths, ev.AreasForImprovement, ev.AdditionalComments, ev.OverallRating,
		ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

// Get retrieves an evaluation by ID
func (r *EvaluationRepository) Get(ctx context.Context, id string) (*evaluation.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE id = ?`

	var ev evaluation.Evaluation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ev.ID, &ev.Tech, &ev.Evaluator, &ev.PeriodStart, &ev.PeriodEnd,
		&ev.CasesReviewed, &ev.QualityScore, &ev.PingCount, &ev.KudosCount,
		&ev.Strengths, &ev.AreasForImprovement, &ev.AdditionalComments, &ev.OverallRating,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &ev, nil
}

// Update rewrites the narrative fields, rating, and updated_at of an
// evaluation. The computed metric columns are fixed at creation.
func (r *EvaluationRepository) Update(ctx context.Context, ev *evaluation.Evaluation) error {
	query := `
		UPDATE evaluations
		SET strengths = ?, areas_for_improvement = ?, additional_comments = ?,
			overall_rating = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ev.Strengths, ev.AreasForImprovement, ev.AdditionalComments,
		ev.OverallRating, ev.UpdatedAt, ev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an evaluation by ID
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all evaluations, newest first
func (r *EvaluationRepository) List(ctx context.Context) ([]evaluation.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations ORDER BY created_at DESC`
	return r.query(ctx, query)
}

// ListForTech returns a tech's evaluations, newest first
func (r *EvaluationRepository) ListForTech(ctx context.Context, tech string) ([]evaluation.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE tech = ? ORDER BY created_at DESC`
	return r.query(ctx, query, tech)
}

// CountReviewedForTech counts reviewed claims for a tech within a period,
// optionally restricted to the given statuses
func (r *EvaluationRepository) CountReviewedForTech(ctx context.Context, tech string, start, end time.Time, statuses []claim.ReviewStatus) (int, error) {
	query := `SELECT COUNT(*) FROM reviewed_claims WHERE tech = ? AND review_time >= ? AND review_time <= ?`
	args := []any{tech, start, end}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ","))
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviewed claims: %w", err)
	}
	return count, nil
}

func (r *EvaluationRepository) query(ctx context.Context, query string, args ...any) ([]evaluation.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []evaluation.Evaluation
	for rows.Next() {
		var ev evaluation.Evaluation
		err := rows.Scan(
			&ev.ID, &ev.Tech, &ev.Evaluator, &ev.PeriodStart, &ev.PeriodEnd,
			&ev.CasesReviewed, &ev.QualityScore, &ev.PingCount, &ev.KudosCount,
			&ev.Strengths, &ev.AreasForImprovement, &ev.AdditionalComments, &ev.OverallRating,
			&ev.CreatedAt, &ev.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation rows: %w", err)
	}
	return evals, nil
}
