package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/report"
)

// ReportRepository implements report.Repository for SQLite
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountActive counts active claims matching the filter
func (r *ReportRepository) CountActive(ctx context.Context, f report.ClaimFilter) (int, error) {
	return r.countClaims(ctx, "active_claims", "claim_time", f)
}

// CountComplete counts complete claims matching the filter
func (r *ReportRepository) CountComplete(ctx context.Context, f report.ClaimFilter) (int, error) {
	return r.countClaims(ctx, "complete_claims", "complete_time", f)
}

func (r *ReportRepository) countClaims(ctx context.Context, table, timeColumn string, f report.ClaimFilter) (int, error) {
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE 1=1`
	args := []any{}

	if f.User != "" {
		query += ` AND user = ?`
		args = append(args, f.User)
	}
	if f.Since != nil {
		query += ` AND ` + timeColumn + ` >= ?`
		args = append(args, *f.Since)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// CountReviewed counts reviewed claims matching the filter
func (r *ReportRepository) CountReviewed(ctx context.Context, f report.ReviewFilter) (int, error) {
	where, args := reviewWhere(f)
	query := `SELECT COUNT(*) FROM reviewed_claims ` + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviewed claims: %w", err)
	}
	return count, nil
}

// StatusBreakdown returns per-status counts of reviewed claims matching the
// filter. Statuses with no rows are present with a zero count.
func (r *ReportRepository) StatusBreakdown(ctx context.Context, f report.ReviewFilter) (map[claim.ReviewStatus]int, error) {
	where, args := reviewWhere(f)
	query := `SELECT status, COUNT(*) FROM reviewed_claims ` + where + ` GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get status breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := map[claim.ReviewStatus]int{
		claim.StatusChecked: 0, claim.StatusDone: 0, claim.StatusKudos: 0,
		claim.StatusPingedLow: 0, claim.StatusPingedMed: 0, claim.StatusPingedHigh: 0,
		claim.StatusAcknowledged: 0, claim.StatusResolved: 0,
	}
	for rows.Next() {
		var status claim.ReviewStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		breakdown[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}
	return breakdown, nil
}

// TopTechs ranks techs by reviewed-claim count within the filter, with kudos
// and ping sub-counts
func (r *ReportRepository) TopTechs(ctx context.Context, f report.ReviewFilter, limit int) ([]report.TechRank, error) {
	where, args := reviewWhere(f)
	query := `
		SELECT tech,
			COUNT(*) AS total_cases,
			COUNT(CASE WHEN status = 'kudos' THEN 1 END) AS kudos,
			COUNT(CASE WHEN status IN ('pingedlow', 'pingedmed', 'pingedhigh') THEN 1 END) AS pings
		FROM reviewed_claims ` + where + `
		GROUP BY tech
		ORDER BY total_cases DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank techs: %w", err)
	}
	defer rows.Close()

	var ranks []report.TechRank
	for rows.Next() {
		var tr report.TechRank
		if err := rows.Scan(&tr.Username, &tr.TotalCases, &tr.Kudos, &tr.Pings); err != nil {
			return nil, fmt.Errorf("failed to scan tech rank: %w", err)
		}
		tr.Rank = len(ranks) + 1
		ranks = append(ranks, tr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tech rank rows: %w", err)
	}
	return ranks, nil
}

// TopLeads ranks leads by reviews given within the filter
func (r *ReportRepository) TopLeads(ctx context.Context, f report.ReviewFilter, limit int) ([]report.LeadRank, error) {
	where, args := reviewWhere(f)
	query := `
		SELECT lead, COUNT(*) AS reviews_given
		FROM reviewed_claims ` + where + `
		GROUP BY lead
		ORDER BY reviews_given DESC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank leads: %w", err)
	}
	defer rows.Close()

	var ranks []report.LeadRank
	for rows.Next() {
		var lr report.LeadRank
		if err := rows.Scan(&lr.Username, &lr.ReviewsGiven); err != nil {
			return nil, fmt.Errorf("failed to scan lead rank: %w", err)
		}
		lr.Rank = len(ranks) + 1
		ranks = append(ranks, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rank rows: %w", err)
	}
	return ranks, nil
}

func reviewWhere(f report.ReviewFilter) (string, []any) {
	conditions := []string{"1=1"}
	args := []any{}

	if f.Tech != "" {
		conditions = append(conditions, "tech = ?")
		args = append(args, f.Tech)
	}
	if f.Lead != "" {
		conditions = append(conditions, "lead = ?")
		args = append(args, f.Lead)
	}
	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if f.Since != nil {
		conditions = append(conditions, "review_time >= ?")
		args = append(args, *f.Since)
	}
	if f.Until != nil {
		conditions = append(conditions, "review_time <= ?")
		args = append(args, *f.Until)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
