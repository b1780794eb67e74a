package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ReviewedClaimHandler serves the reviewed claim and ping endpoints.
type ReviewedClaimHandler struct {
	claims *claim.Service
	logger *slog.Logger
}

// NewReviewedClaimHandler creates a new ReviewedClaimHandler.
func NewReviewedClaimHandler(claims *claim.Service, logger *slog.Logger) *ReviewedClaimHandler {
	return &ReviewedClaimHandler{claims: claims, logger: logger}
}

// Register mounts the routes on the authenticated router group. Acknowledge
// and getpings are tech-reachable; ownership is checked in the service.
func (h *ReviewedClaimHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/reviewedclaim")
	routes.GET("/list/", RequireRole(user.RoleLead), h.list)
	routes.GET("/getpings/:userId", RequireRole(user.RoleTech), h.getPings)
	routes.POST("/acknowledge/:id", RequireRole(user.RoleTech), h.acknowledge)
	routes.POST("/resolve/:id", RequireRole(user.RoleLead), h.resolve)
	routes.POST("/create-ping/", RequireRole(user.RoleLead), h.createPing)
}

type acknowledgeForm struct {
	AcknowledgeComment string `json:"acknowledge_comment"`
}

type createPingForm struct {
	CaseNum  string `json:"casenum"`
	TechID   string `json:"tech_id"`
	Severity string `json:"severity"`
	Comment  string `json:"comment"`
}

func (h *ReviewedClaimHandler) list(c *gin.Context) {
	claims, err := h.claims.ListReviewed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if claims == nil {
		claims = []claim.ReviewedClaim{}
	}
	c.JSON(http.StatusOK, claims)
}

func (h *ReviewedClaimHandler) getPings(c *gin.Context) {
	actor := CurrentUser(c)

	pings, err := h.claims.PingsForUser(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if pings == nil {
		pings = []claim.ReviewedClaim{}
	}
	c.JSON(http.StatusOK, pings)
}

func (h *ReviewedClaimHandler) acknowledge(c *gin.Context) {
	actor := CurrentUser(c)

	var form acknowledgeForm
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	updated, err := h.claims.Acknowledge(c.Request.Context(), actor, c.Param("id"), form.AcknowledgeComment)
	if err != nil {
		h.logger.Info("acknowledge rejected", "id", c.Param("id"), "user", actor.Username, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ReviewedClaimHandler) resolve(c *gin.Context) {
	updated, err := h.claims.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ReviewedClaimHandler) createPing(c *gin.Context) {
	actor := CurrentUser(c)

	var form createPingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.claims.CreatePing(c.Request.Context(), actor,
		form.CaseNum, form.TechID, claim.ReviewStatus(form.Severity), form.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}
