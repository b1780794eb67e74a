package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/caselookup"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// CaseLookupHandler serves cross-stage case search and history.
type CaseLookupHandler struct {
	lookup *caselookup.Service
	logger *slog.Logger
}

// NewCaseLookupHandler creates a new CaseLookupHandler.
func NewCaseLookupHandler(lookup *caselookup.Service, logger *slog.Logger) *CaseLookupHandler {
	return &CaseLookupHandler{lookup: lookup, logger: logger}
}

// Register mounts the routes on the authenticated router group.
func (h *CaseLookupHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/caselookup", RequireRole(user.RoleLead))
	routes.GET("/search/:casenum", h.search)
	routes.GET("/history/:casenum", h.history)
	routes.GET("/status/:casenum", h.status)
}

func (h *CaseLookupHandler) search(c *gin.Context) {
	result, err := h.lookup.Search(c.Request.Context(), c.Param("casenum"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CaseLookupHandler) history(c *gin.Context) {
	history, err := h.lookup.History(c.Request.Context(), c.Param("casenum"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *CaseLookupHandler) status(c *gin.Context) {
	result, err := h.lookup.Status(c.Request.Context(), c.Param("casenum"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
