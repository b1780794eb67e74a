package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/caselookup"
	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// respondError translates domain sentinel errors to HTTP statuses in one
// place, so handlers stay free of status-code decisions.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, claim.ErrCaseAlreadyClaimed),
		errors.Is(err, claim.ErrCaseAlreadyComplete):
		// The UI treats a duplicate claim as a plain validation failure.
		return http.StatusBadRequest
	case errors.Is(err, claim.ErrClaimNotFound),
		errors.Is(err, claim.ErrTechNotFound),
		errors.Is(err, caselookup.ErrCaseNotFound),
		errors.Is(err, parentcase.ErrCaseNotFound),
		errors.Is(err, evaluation.ErrEvaluationNotFound),
		errors.Is(err, evaluation.ErrTechNotFound),
		errors.Is(err, report.ErrUserNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, claim.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, claim.ErrInvalidCaseNum),
		errors.Is(err, claim.ErrInvalidStatus),
		errors.Is(err, claim.ErrNotPinged),
		errors.Is(err, claim.ErrNotAcknowledged),
		errors.Is(err, claim.ErrMissingComment),
		errors.Is(err, parentcase.ErrInvalidInput),
		errors.Is(err, parentcase.ErrCaseExists),
		errors.Is(err, evaluation.ErrInvalidPeriod),
		errors.Is(err, evaluation.ErrInvalidRating),
		errors.Is(err, report.ErrInvalidRange),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrUsernameTaken):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
