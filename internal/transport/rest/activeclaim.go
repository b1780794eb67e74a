package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ActiveClaimHandler serves the active claim lifecycle endpoints.
type ActiveClaimHandler struct {
	claims *claim.Service
	logger *slog.Logger
}

// NewActiveClaimHandler creates a new ActiveClaimHandler.
func NewActiveClaimHandler(claims *claim.Service, logger *slog.Logger) *ActiveClaimHandler {
	return &ActiveClaimHandler{claims: claims, logger: logger}
}

// Register mounts the routes on the authenticated router group.
func (h *ActiveClaimHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/activeclaim", RequireRole(user.RoleTech))
	routes.POST("/create/:casenum", h.create)
	routes.DELETE("/complete/:casenum", h.complete)
	routes.DELETE("/unclaim/:casenum", h.unclaim)
	routes.GET("/list/", h.list)
}

func (h *ActiveClaimHandler) create(c *gin.Context) {
	actor := CurrentUser(c)
	casenum := c.Param("casenum")

	created, err := h.claims.Claim(c.Request.Context(), actor, casenum)
	if err != nil {
		h.logger.Info("claim rejected", "casenum", casenum, "user", actor.Username, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ActiveClaimHandler) complete(c *gin.Context) {
	actor := CurrentUser(c)
	casenum := c.Param("casenum")

	done, err := h.claims.Complete(c.Request.Context(), actor, casenum)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, done)
}

func (h *ActiveClaimHandler) unclaim(c *gin.Context) {
	actor := CurrentUser(c)
	casenum := c.Param("casenum")

	if err := h.claims.Unclaim(c.Request.Context(), actor, casenum); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActiveClaimHandler) list(c *gin.Context) {
	claims, err := h.claims.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if claims == nil {
		claims = []claim.ActiveClaim{}
	}
	c.JSON(http.StatusOK, claims)
}
