package evaluation

import "time"

// Evaluation is a lead's summary of a technician's performance over a period.
// Lifecycle data feeds the metrics but the evaluation is its own durable
// record.
type Evaluation struct {
	ID                  string    `json:"id"`
	Tech                string    `json:"tech"`
	Evaluator           string    `json:"evaluator"`
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
	CasesReviewed       int       `json:"cases_reviewed"`
	QualityScore        *float64  `json:"quality_score,omitempty"`
	PingCount           int       `json:"ping_count"`
	KudosCount          int       `json:"kudos_count"`
	Strengths           string    `json:"strengths"`
	AreasForImprovement string    `json:"areas_for_improvement"`
	AdditionalComments  string    `json:"additional_comments"`
	OverallRating       int       `json:"overall_rating"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Metrics are lifecycle-derived numbers for a tech over a period, used to
// prefill an evaluation.
type Metrics struct {
	Tech          string     `json:"tech"`
	PeriodStart   time.Time  `json:"period_start"`
	PeriodEnd     time.Time  `json:"period_end"`
	CasesReviewed int        `json:"cases_reviewed"`
	PositiveCount int        `json:"positive_count"`
	PingCount     int        `json:"ping_count"`
	KudosCount    int        `json:"kudos_count"`
	QualityScore  float64    `json:"quality_score"`
}
