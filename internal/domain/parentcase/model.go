package parentcase

import "time"

// ParentCase is a knowledge-base record for a recurring root-cause case. It
// sits outside the claim lifecycle; techs consult it while working claims.
type ParentCase struct {
	ID          string    `json:"id"`
	CaseNumber  string    `json:"case_number"`
	Description string    `json:"description"`
	Solution    *string   `json:"solution,omitempty"`
	Active      bool      `json:"active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
