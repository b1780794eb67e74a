package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// CompleteClaimHandler serves the review endpoints on complete claims.
type CompleteClaimHandler struct {
	claims *claim.Service
	logger *slog.Logger
}

// NewCompleteClaimHandler creates a new CompleteClaimHandler.
func NewCompleteClaimHandler(claims *claim.Service, logger *slog.Logger) *CompleteClaimHandler {
	return &CompleteClaimHandler{claims: claims, logger: logger}
}

// Register mounts the routes on the authenticated router group.
func (h *CompleteClaimHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/completeclaim", RequireRole(user.RoleLead))
	routes.POST("/begin-review/:id", h.beginReview)
	routes.POST("/review/:id", h.review)
	routes.GET("/list/", h.list)
}

type reviewForm struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (h *CompleteClaimHandler) beginReview(c *gin.Context) {
	actor := CurrentUser(c)

	updated, err := h.claims.BeginReview(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, updated)
}

func (h *CompleteClaimHandler) review(c *gin.Context) {
	actor := CurrentUser(c)

	var form reviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if form.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is a required field"})
		return
	}

	reviewed, err := h.claims.Review(c.Request.Context(), actor, c.Param("id"), claim.ReviewStatus(form.Status), form.Comment)
	if err != nil {
		h.logger.Info("review rejected", "id", c.Param("id"), "lead", actor.Username, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reviewed)
}

func (h *CompleteClaimHandler) list(c *gin.Context) {
	claims, err := h.claims.ListComplete(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if claims == nil {
		claims = []claim.CompleteClaim{}
	}
	c.JSON(http.StatusOK, claims)
}
