package caselookup

import "time"

// Stage names a case's current position in the workflow.
type Stage string

const (
	StageActive   Stage = "active"
	StageComplete Stage = "complete"
	StageReviewed Stage = "reviewed"
)

// SearchResult is the current state of a case, from whichever stage holds it.
type SearchResult struct {
	CaseNum       string `json:"casenum"`
	Found         bool   `json:"found"`
	CurrentStatus Stage  `json:"current_status,omitempty"`
	Data          any    `json:"data,omitempty"`
	TotalReviews  int    `json:"total_reviews,omitempty"`
}

// StatusResult is a quick status check for a case.
type StatusResult struct {
	CaseNum      string `json:"casenum"`
	Status       Stage  `json:"status"`
	ReviewStatus string `json:"review_status,omitempty"`
	Message      string `json:"message"`
}

// TimelineEntry is one stage of a case's history.
type TimelineEntry struct {
	Stage        Stage      `json:"stage"`
	Status       string     `json:"status"`
	User         string     `json:"user,omitempty"`
	Lead         string     `json:"lead,omitempty"`
	ClaimTime    time.Time  `json:"claim_time"`
	CompleteTime *time.Time `json:"complete_time,omitempty"`
	ReviewTime   *time.Time `json:"review_time,omitempty"`
	Comment      string     `json:"comment,omitempty"`
}

// History is the full ordered timeline of a case across all stages.
type History struct {
	CaseNum  string          `json:"casenum"`
	Timeline []TimelineEntry `json:"timeline"`
}
