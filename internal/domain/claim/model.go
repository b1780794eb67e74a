package claim

import "time"

// ActiveClaim is a case currently being worked by a technician. At most one
// active claim exists per case number.
type ActiveClaim struct {
	ID        string    `json:"id"`
	CaseNum   string    `json:"casenum"`
	User      string    `json:"user"`
	ClaimTime time.Time `json:"claim_time"`
}

// CompleteClaim is a finished case awaiting review. Lead is set when a lead
// begins reviewing, so other leads can see the case is taken.
type CompleteClaim struct {
	ID           string    `json:"id"`
	CaseNum      string    `json:"casenum"`
	User         string    `json:"user"`
	Lead         *string   `json:"lead,omitempty"`
	ClaimTime    time.Time `json:"claim_time"`
	CompleteTime time.Time `json:"complete_time"`
}

// ReviewedClaim is the durable review record for a case. A case accumulates
// one row per review, so repeated ping cycles leave a full history.
type ReviewedClaim struct {
	ID                 string       `json:"id"`
	CaseNum            string       `json:"casenum"`
	Tech               string       `json:"tech"`
	Lead               string       `json:"lead"`
	ClaimTime          time.Time    `json:"claim_time"`
	CompleteTime       time.Time    `json:"complete_time"`
	ReviewTime         time.Time    `json:"review_time"`
	Status             ReviewStatus `json:"status"`
	Comment            string       `json:"comment"`
	AcknowledgeComment string       `json:"acknowledge_comment,omitempty"`
}

// IsOwnedBy reports whether the reviewed claim belongs to the given tech.
func (r *ReviewedClaim) IsOwnedBy(username string) bool {
	return r.Tech == username
}
