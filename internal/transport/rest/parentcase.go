package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ParentCaseHandler serves the known-issue parent case endpoints.
type ParentCaseHandler struct {
	cases  *parentcase.Service
	logger *slog.Logger
}

// NewParentCaseHandler creates a new ParentCaseHandler.
func NewParentCaseHandler(cases *parentcase.Service, logger *slog.Logger) *ParentCaseHandler {
	return &ParentCaseHandler{cases: cases, logger: logger}
}

// Register mounts the routes on the authenticated router group. Techs can
// browse active parent cases; creating and editing requires a lead.
func (h *ParentCaseHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/parentcase")
	routes.GET("/list/", RequireRole(user.RoleTech), h.list)
	routes.POST("/create/", RequireRole(user.RoleLead), h.create)
	routes.PATCH("/update/:id", RequireRole(user.RoleLead), h.update)
	routes.POST("/toggle/:id", RequireRole(user.RoleLead), h.toggle)
}

type parentCaseForm struct {
	CaseNumber  string  `json:"case_number"`
	Description string  `json:"description"`
	Solution    *string `json:"solution"`
}

type parentCaseUpdateForm struct {
	Description *string `json:"description"`
	Solution    *string `json:"solution"`
}

func (h *ParentCaseHandler) list(c *gin.Context) {
	cases, err := h.cases.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if cases == nil {
		cases = []parentcase.ParentCase{}
	}
	c.JSON(http.StatusOK, cases)
}

func (h *ParentCaseHandler) create(c *gin.Context) {
	actor := CurrentUser(c)

	var form parentCaseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.cases.Create(c.Request.Context(), actor.Username, parentcase.CreateRequest{
		CaseNumber:  form.CaseNumber,
		Description: form.Description,
		Solution:    form.Solution,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ParentCaseHandler) update(c *gin.Context) {
	var form parentCaseUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.cases.Update(c.Request.Context(), c.Param("id"), parentcase.UpdateRequest{
		Description: form.Description,
		Solution:    form.Solution,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ParentCaseHandler) toggle(c *gin.Context) {
	updated, err := h.cases.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
