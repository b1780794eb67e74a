// Package notify emits fire-and-forget lifecycle events to a broadcast
// channel. Delivery failure never fails the transition that produced the
// event; callers log and move on.
package notify

import "context"

// Event names for claim lifecycle transitions.
const (
	EventClaim       = "claim"
	EventComplete    = "complete"
	EventUnclaimed   = "unclaimed"
	EventBeginReview = "begin-review"
	EventReview      = "review"
)

// Event is the payload broadcast for a lifecycle transition.
type Event struct {
	Event   string `json:"event"`
	CaseNum string `json:"casenum"`
	User    string `json:"user"`
}

// Publisher broadcasts lifecycle events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
