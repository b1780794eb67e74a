package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/caselookup"
	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// Services bundles the domain services the router serves.
type Services struct {
	Users       *user.Service
	Claims      *claim.Service
	Lookup      *caselookup.Service
	ParentCases *parentcase.Service
	Evaluations *evaluation.Service
	Reports     *report.Service
}

// NewRouter assembles the gin engine with all routes mounted.
func NewRouter(svc Services, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	users := NewUserHandler(svc.Users, logger)
	users.RegisterPublic(public)

	authed := r.Group("/", Authenticate(svc.Users))
	users.Register(authed)
	NewActiveClaimHandler(svc.Claims, logger).Register(authed)
	NewCompleteClaimHandler(svc.Claims, logger).Register(authed)
	NewReviewedClaimHandler(svc.Claims, logger).Register(authed)
	NewCaseLookupHandler(svc.Lookup, logger).Register(authed)
	NewParentCaseHandler(svc.ParentCases, logger).Register(authed)
	NewEvaluationHandler(svc.Evaluations, logger).Register(authed)
	NewReportHandler(svc.Reports, logger).Register(authed)

	return r
}
