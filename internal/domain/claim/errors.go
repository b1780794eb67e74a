package claim

import "errors"

var (
	// ErrCaseAlreadyClaimed indicates an active claim already exists for the case number.
	ErrCaseAlreadyClaimed = errors.New("case already claimed")
	// ErrCaseAlreadyComplete indicates a complete claim already exists for the case number.
	ErrCaseAlreadyComplete = errors.New("case already completed")
	// ErrClaimNotFound indicates the referenced claim doesn't exist.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrNotOwner indicates the acting user doesn't own the claim.
	ErrNotOwner = errors.New("not the owning tech")
	// ErrInvalidCaseNum indicates a missing or malformed case number.
	ErrInvalidCaseNum = errors.New("invalid case number")
	// ErrInvalidStatus indicates a missing or unassignable review status.
	ErrInvalidStatus = errors.New("invalid review status")
	// ErrNotPinged indicates the claim is not in a ping-severity state.
	ErrNotPinged = errors.New("claim is not in a pinged state")
	// ErrNotAcknowledged indicates the ping has not been acknowledged yet.
	ErrNotAcknowledged = errors.New("ping must be acknowledged before it can be resolved")
	// ErrMissingComment indicates a manual ping without a comment.
	ErrMissingComment = errors.New("comment is required")
	// ErrTechNotFound indicates the target technician doesn't resolve to a user.
	ErrTechNotFound = errors.New("technician not found")
)
