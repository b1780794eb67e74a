// Package report builds read-only statistics rollups over the claim
// lifecycle data. Simple counts and ratios, no invariants of its own.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
)

// ErrUserNotFound indicates the requested user doesn't exist.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRange indicates a missing or reversed date range.
var ErrInvalidRange = errors.New("invalid date range")

var pingCycleStatuses = []claim.ReviewStatus{
	claim.StatusPingedLow, claim.StatusPingedMed, claim.StatusPingedHigh,
	claim.StatusAcknowledged, claim.StatusResolved,
}

var positiveStatuses = []claim.ReviewStatus{
	claim.StatusKudos, claim.StatusChecked, claim.StatusDone,
}

// Service computes reporting rollups.
type Service struct {
	stats  Repository
	users  UserDirectory
	logger *slog.Logger
}

// NewService creates a new report service.
func NewService(stats Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{stats: stats, users: users, logger: logger}
}

// Summary returns system-wide totals, recent activity and the review status
// breakdown.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	summary := &Summary{GeneratedAt: now}

	var err error
	if summary.Totals.ActiveClaims, err = s.stats.CountActive(ctx, ClaimFilter{}); err != nil {
		return nil, fmt.Errorf("counting active claims: %w", err)
	}
	if summary.Totals.PendingReview, err = s.stats.CountComplete(ctx, ClaimFilter{}); err != nil {
		return nil, fmt.Errorf("counting complete claims: %w", err)
	}
	if summary.Totals.ReviewedClaims, err = s.stats.CountReviewed(ctx, ReviewFilter{}); err != nil {
		return nil, fmt.Errorf("counting reviewed claims: %w", err)
	}

	if summary.Today, err = s.stageCounts(ctx, todayStart); err != nil {
		return nil, err
	}
	if summary.ThisWeek, err = s.stageCounts(ctx, weekStart); err != nil {
		return nil, err
	}

	if summary.StatusBreakdown, err = s.stats.StatusBreakdown(ctx, ReviewFilter{}); err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	pinged := 0
	for _, st := range pingCycleStatuses {
		pinged += summary.StatusBreakdown[st]
	}
	summary.PingRate = ratio(pinged, summary.Totals.ReviewedClaims)

	return summary, nil
}

// UserStats returns per-user counts as tech and as lead.
func (s *Service) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	stats := &UserStats{}
	stats.User.ID = u.ID
	stats.User.Username = u.Username
	stats.User.FullName = u.FullName()

	if stats.AsTech.ActiveClaims, err = s.stats.CountActive(ctx, ClaimFilter{User: u.Username}); err != nil {
		return nil, fmt.Errorf("counting active claims: %w", err)
	}
	if stats.AsTech.CompletedPendingReview, err = s.stats.CountComplete(ctx, ClaimFilter{User: u.Username}); err != nil {
		return nil, fmt.Errorf("counting complete claims: %w", err)
	}
	if stats.AsTech.TotalReviewed, err = s.stats.CountReviewed(ctx, ReviewFilter{Tech: u.Username}); err != nil {
		return nil, fmt.Errorf("counting reviews: %w", err)
	}
	if stats.AsTech.PositiveReviews, err = s.stats.CountReviewed(ctx, ReviewFilter{Tech: u.Username, Statuses: positiveStatuses}); err != nil {
		return nil, fmt.Errorf("counting positive reviews: %w", err)
	}
	if stats.AsTech.PingsReceived, err = s.stats.CountReviewed(ctx, ReviewFilter{Tech: u.Username, Statuses: pingCycleStatuses}); err != nil {
		return nil, fmt.Errorf("counting pings: %w", err)
	}
	stats.AsTech.PingRate = ratio(stats.AsTech.PingsReceived, stats.AsTech.TotalReviewed)

	if stats.AsLead.ReviewsGiven, err = s.stats.CountReviewed(ctx, ReviewFilter{Lead: u.Username}); err != nil {
		return nil, fmt.Errorf("counting reviews given: %w", err)
	}
	if stats.AsLead.ReviewsToday, err = s.stats.CountReviewed(ctx, ReviewFilter{Lead: u.Username, Since: &todayStart}); err != nil {
		return nil, fmt.Errorf("counting reviews today: %w", err)
	}
	if stats.AsLead.ReviewsThisWeek, err = s.stats.CountReviewed(ctx, ReviewFilter{Lead: u.Username, Since: &weekStart}); err != nil {
		return nil, fmt.Errorf("counting reviews this week: %w", err)
	}

	return stats, nil
}

// Leaderboard ranks techs by cases reviewed and leads by reviews given over
// the last N days.
func (s *Service) Leaderboard(ctx context.Context, days, limit int) (*Leaderboard, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 10
	}

	since := time.Now().AddDate(0, 0, -days)
	filter := ReviewFilter{Since: &since}

	techs, err := s.stats.TopTechs(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking techs: %w", err)
	}
	leads, err := s.stats.TopLeads(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking leads: %w", err)
	}

	return &Leaderboard{
		Period:          fmt.Sprintf("Last %d days", days),
		GeneratedAt:     time.Now(),
		TechLeaderboard: techs,
		LeadLeaderboard: leads,
	}, nil
}

// PingStats summarize ping volume, severity mix and resolution rate.
func (s *Service) PingStats(ctx context.Context) (*PingStats, error) {
	stats := &PingStats{GeneratedAt: time.Now()}

	var err error
	if stats.Totals.AllPings, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: pingCycleStatuses}); err != nil {
		return nil, fmt.Errorf("counting pings: %w", err)
	}
	if stats.Totals.Active, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: claim.PingStatuses}); err != nil {
		return nil, fmt.Errorf("counting active pings: %w", err)
	}
	if stats.Totals.Acknowledged, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: []claim.ReviewStatus{claim.StatusAcknowledged}}); err != nil {
		return nil, fmt.Errorf("counting acknowledged pings: %w", err)
	}
	if stats.Totals.Resolved, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: []claim.ReviewStatus{claim.StatusResolved}}); err != nil {
		return nil, fmt.Errorf("counting resolved pings: %w", err)
	}

	if stats.BySeverity.Low, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: []claim.ReviewStatus{claim.StatusPingedLow}}); err != nil {
		return nil, fmt.Errorf("counting low pings: %w", err)
	}
	if stats.BySeverity.Medium, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: []claim.ReviewStatus{claim.StatusPingedMed}}); err != nil {
		return nil, fmt.Errorf("counting medium pings: %w", err)
	}
	if stats.BySeverity.High, err = s.stats.CountReviewed(ctx, ReviewFilter{Statuses: []claim.ReviewStatus{claim.StatusPingedHigh}}); err != nil {
		return nil, fmt.Errorf("counting high pings: %w", err)
	}

	stats.ResolutionRate = ratio(stats.Totals.Resolved, stats.Totals.AllPings)

	if stats.TopPingedTechs, err = s.stats.TopTechs(ctx, ReviewFilter{Statuses: pingCycleStatuses}, 5); err != nil {
		return nil, fmt.Errorf("ranking pinged techs: %w", err)
	}

	return stats, nil
}

// DateRange returns reviewed-claim stats between start and end, inclusive.
func (s *Service) DateRange(ctx context.Context, start, end time.Time) (*DateRangeStats, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	// Make the end date inclusive through end of day.
	until := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	filter := ReviewFilter{Since: &start, Until: &until}

	stats := &DateRangeStats{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}

	var err error
	if stats.Total, err = s.stats.CountReviewed(ctx, filter); err != nil {
		return nil, fmt.Errorf("counting reviews in range: %w", err)
	}
	if stats.ByStatus, err = s.stats.StatusBreakdown(ctx, filter); err != nil {
		return nil, fmt.Errorf("status breakdown in range: %w", err)
	}
	if stats.TopTechs, err = s.stats.TopTechs(ctx, filter, 10); err != nil {
		return nil, fmt.Errorf("ranking techs in range: %w", err)
	}
	if stats.TopLeads, err = s.stats.TopLeads(ctx, filter, 10); err != nil {
		return nil, fmt.Errorf("ranking leads in range: %w", err)
	}

	return stats, nil
}

func (s *Service) stageCounts(ctx context.Context, since time.Time) (StageCounts, error) {
	var counts StageCounts
	var err error

	if counts.Claimed, err = s.stats.CountActive(ctx, ClaimFilter{Since: &since}); err != nil {
		return counts, fmt.Errorf("counting claims since %s: %w", since, err)
	}
	if counts.Completed, err = s.stats.CountComplete(ctx, ClaimFilter{Since: &since}); err != nil {
		return counts, fmt.Errorf("counting completions since %s: %w", since, err)
	}
	if counts.Reviewed, err = s.stats.CountReviewed(ctx, ReviewFilter{Since: &since}); err != nil {
		return counts, fmt.Errorf("counting reviews since %s: %w", since, err)
	}
	return counts, nil
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
