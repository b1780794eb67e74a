package claim

// ReviewStatus is the outcome recorded on a reviewed claim.
type ReviewStatus string

const (
	StatusChecked      ReviewStatus = "checked"
	StatusDone         ReviewStatus = "done"
	StatusKudos        ReviewStatus = "kudos"
	StatusPingedLow    ReviewStatus = "pingedlow"
	StatusPingedMed    ReviewStatus = "pingedmed"
	StatusPingedHigh   ReviewStatus = "pingedhigh"
	StatusAcknowledged ReviewStatus = "acknowledged"
	StatusResolved     ReviewStatus = "resolved"
)

// PingStatuses are the severity-ordered quality-flag statuses.
var PingStatuses = []ReviewStatus{StatusPingedLow, StatusPingedMed, StatusPingedHigh}

// reviewOutcomes are the statuses a lead may assign when finalizing a review.
// Acknowledged and resolved are only reachable through the ping sub-workflow.
var reviewOutcomes = map[ReviewStatus]bool{
	StatusChecked:    true,
	StatusDone:       true,
	StatusKudos:      true,
	StatusPingedLow:  true,
	StatusPingedMed:  true,
	StatusPingedHigh: true,
}

// IsReviewOutcome reports whether the status may be assigned at review time.
func (s ReviewStatus) IsReviewOutcome() bool {
	return reviewOutcomes[s]
}

// IsPing reports whether the status is one of the ping severities.
func (s ReviewStatus) IsPing() bool {
	switch s {
	case StatusPingedLow, StatusPingedMed, StatusPingedHigh:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is accepted: checked, done
// and kudos never enter the ping sub-workflow, resolved closes it.
func (s ReviewStatus) IsTerminal() bool {
	switch s {
	case StatusChecked, StatusDone, StatusKudos, StatusResolved:
		return true
	}
	return false
}
