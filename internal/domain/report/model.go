package report

import (
	"time"

	"github.com/mwhitford/caseflow/internal/domain/claim"
)

// StageCounts are claim counts per workflow stage.
type StageCounts struct {
	Claimed   int `json:"claimed"`
	Completed int `json:"completed"`
	Reviewed  int `json:"reviewed"`
}

// Summary is the system-wide rollup.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Totals      struct {
		ActiveClaims   int `json:"active_claims"`
		PendingReview  int `json:"pending_review"`
		ReviewedClaims int `json:"reviewed_claims"`
	} `json:"totals"`
	Today           StageCounts                  `json:"today"`
	ThisWeek        StageCounts                  `json:"this_week"`
	StatusBreakdown map[claim.ReviewStatus]int   `json:"review_status_breakdown"`
	PingRate        float64                      `json:"ping_rate"`
}

// UserStats are per-user counts, both as tech and as lead.
type UserStats struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
	} `json:"user"`
	AsTech struct {
		ActiveClaims           int     `json:"active_claims"`
		CompletedPendingReview int     `json:"completed_pending_review"`
		TotalReviewed          int     `json:"total_reviewed"`
		PositiveReviews        int     `json:"positive_reviews"`
		PingsReceived          int     `json:"pings_received"`
		PingRate               float64 `json:"ping_rate"`
	} `json:"as_tech"`
	AsLead struct {
		ReviewsGiven    int `json:"reviews_given"`
		ReviewsToday    int `json:"reviews_today"`
		ReviewsThisWeek int `json:"reviews_this_week"`
	} `json:"as_lead"`
}

// TechRank is one tech leaderboard entry.
type TechRank struct {
	Rank       int    `json:"rank"`
	Username   string `json:"username"`
	TotalCases int    `json:"total_cases"`
	Kudos      int    `json:"kudos"`
	Pings      int    `json:"pings"`
}

// LeadRank is one lead leaderboard entry.
type LeadRank struct {
	Rank         int    `json:"rank"`
	Username     string `json:"username"`
	ReviewsGiven int    `json:"reviews_given"`
}

// Leaderboard ranks top performers over a period.
type Leaderboard struct {
	Period          string     `json:"period"`
	GeneratedAt     time.Time  `json:"generated_at"`
	TechLeaderboard []TechRank `json:"tech_leaderboard"`
	LeadLeaderboard []LeadRank `json:"lead_leaderboard"`
}

// PingStats summarize the ping sub-workflow.
type PingStats struct {
	GeneratedAt time.Time `json:"generated_at"`
	Totals      struct {
		AllPings     int `json:"all_pings"`
		Active       int `json:"active"`
		Acknowledged int `json:"acknowledged"`
		Resolved     int `json:"resolved"`
	} `json:"totals"`
	BySeverity struct {
		Low    int `json:"low"`
		Medium int `json:"medium"`
		High   int `json:"high"`
	} `json:"by_severity"`
	ResolutionRate float64    `json:"resolution_rate"`
	TopPingedTechs []TechRank `json:"top_pinged_techs"`
}

// DateRangeStats are reviewed-claim counts within a date range.
type DateRangeStats struct {
	Start    string                     `json:"start"`
	End      string                     `json:"end"`
	Total    int                        `json:"cases_reviewed"`
	ByStatus map[claim.ReviewStatus]int `json:"by_status"`
	TopTechs []TechRank                 `json:"top_techs"`
	TopLeads []LeadRank                 `json:"top_leads"`
}
