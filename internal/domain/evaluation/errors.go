package evaluation

import "errors"

var (
	// ErrEvaluationNotFound indicates the evaluation doesn't exist.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrTechNotFound indicates the evaluated tech doesn't resolve to a user.
	ErrTechNotFound = errors.New("technician not found")
	// ErrInvalidPeriod indicates period_end precedes period_start.
	ErrInvalidPeriod = errors.New("invalid evaluation period")
	// ErrInvalidRating indicates an overall rating outside 1-5.
	ErrInvalidRating = errors.New("overall rating must be between 1 and 5")
)
