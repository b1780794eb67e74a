package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/repository"
	"github.com/mwhitford/caseflow/internal/repository/mocks"
)

func TestSummary_PingRate(t *testing.T) {
	ctx := context.Background()

	stats := &mocks.ReportRepository{}
	stats.On("CountActive", ctx, mock.Anything).Return(2, nil)
	stats.On("CountComplete", ctx, mock.Anything).Return(3, nil)
	stats.On("CountReviewed", ctx, mock.Anything).Return(12, nil)
	stats.On("StatusBreakdown", ctx, report.ReviewFilter{}).Return(map[claim.ReviewStatus]int{
		claim.StatusChecked:    6,
		claim.StatusKudos:      2,
		claim.StatusPingedLow:  2,
		claim.StatusResolved:   1,
		claim.StatusPingedHigh: 1,
	}, nil)

	svc := report.NewService(stats, &mocks.UserDirectory{}, nil)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Totals.ActiveClaims)
	require.Equal(t, 12, summary.Totals.ReviewedClaims)
	// 4 of 12 reviews are in the ping cycle.
	require.InDelta(t, 33.33, summary.PingRate, 0.001)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, "u1").Return(&user.User{ID: "u1", Username: "alice", FirstName: "Alice", LastName: "Nguyen"}, nil)

	stats := &mocks.ReportRepository{}
	stats.On("CountActive", ctx, report.ClaimFilter{User: "alice"}).Return(1, nil)
	stats.On("CountComplete", ctx, report.ClaimFilter{User: "alice"}).Return(2, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return f.Tech == "alice" && f.Statuses == nil
	})).Return(10, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return f.Tech == "alice" && len(f.Statuses) == 3
	})).Return(8, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return f.Tech == "alice" && len(f.Statuses) == 5
	})).Return(2, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return f.Lead == "alice"
	})).Return(0, nil)

	svc := report.NewService(stats, users, nil)

	result, err := svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Alice Nguyen", result.User.FullName)
	require.Equal(t, 10, result.AsTech.TotalReviewed)
	require.Equal(t, 2, result.AsTech.PingsReceived)
	require.InDelta(t, 20.0, result.AsTech.PingRate, 0.001)
}

func TestUserStats_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserDirectory{}
	users.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := report.NewService(&mocks.ReportRepository{}, users, nil)

	_, err := svc.UserStats(ctx, "ghost")
	require.ErrorIs(t, err, report.ErrUserNotFound)
}

func TestLeaderboard_Defaults(t *testing.T) {
	ctx := context.Background()

	stats := &mocks.ReportRepository{}
	stats.On("TopTechs", ctx, mock.Anything, 10).Return([]report.TechRank{
		{Rank: 1, Username: "alice", TotalCases: 30},
	}, nil)
	stats.On("TopLeads", ctx, mock.Anything, 10).Return([]report.LeadRank{
		{Rank: 1, Username: "carol", ReviewsGiven: 25},
	}, nil)

	svc := report.NewService(stats, &mocks.UserDirectory{}, nil)

	board, err := svc.Leaderboard(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "Last 7 days", board.Period)
	require.Len(t, board.TechLeaderboard, 1)
	require.Len(t, board.LeadLeaderboard, 1)
}

func TestPingStats_ResolutionRate(t *testing.T) {
	ctx := context.Background()

	stats := &mocks.ReportRepository{}
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return len(f.Statuses) == 5
	})).Return(8, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return len(f.Statuses) == 3
	})).Return(3, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == claim.StatusAcknowledged
	})).Return(3, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == claim.StatusResolved
	})).Return(2, nil)
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0].IsPing()
	})).Return(1, nil)
	stats.On("TopTechs", ctx, mock.Anything, 5).Return([]report.TechRank{}, nil)

	svc := report.NewService(stats, &mocks.UserDirectory{}, nil)

	result, err := svc.PingStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 8, result.Totals.AllPings)
	require.Equal(t, 2, result.Totals.Resolved)
	require.InDelta(t, 25.0, result.ResolutionRate, 0.001)
}

func TestDateRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	stats := &mocks.ReportRepository{}
	stats.On("CountReviewed", ctx, mock.MatchedBy(func(f report.ReviewFilter) bool {
		// The end date is inclusive through end of day.
		return f.Since.Equal(start) && f.Until.Hour() == 23
	})).Return(40, nil)
	stats.On("StatusBreakdown", ctx, mock.Anything).Return(map[claim.ReviewStatus]int{claim.StatusChecked: 40}, nil)
	stats.On("TopTechs", ctx, mock.Anything, 10).Return([]report.TechRank{}, nil)
	stats.On("TopLeads", ctx, mock.Anything, 10).Return([]report.LeadRank{}, nil)

	svc := report.NewService(stats, &mocks.UserDirectory{}, nil)

	result, err := svc.DateRange(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, "2026-04-01", result.Start)
	require.Equal(t, 40, result.Total)
}

func TestDateRange_Reversed(t *testing.T) {
	ctx := context.Background()
	svc := report.NewService(&mocks.ReportRepository{}, &mocks.UserDirectory{}, nil)

	_, err := svc.DateRange(ctx, time.Now(), time.Now().AddDate(0, 0, -1))
	require.ErrorIs(t, err, report.ErrInvalidRange)
}
