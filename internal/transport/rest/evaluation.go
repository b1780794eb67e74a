package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// EvaluationHandler serves technician performance evaluation endpoints.
type EvaluationHandler struct {
	evaluations *evaluation.Service
	logger      *slog.Logger
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluations *evaluation.Service, logger *slog.Logger) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations, logger: logger}
}

// Register mounts the routes on the authenticated router group. Techs may read
// their own evaluations; the per-tech routes enforce self-or-lead below.
func (h *EvaluationHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/evaluation")
	routes.POST("/create/", RequireRole(user.RoleLead), h.create)
	routes.GET("/list/", RequireRole(user.RoleLead), h.list)
	routes.GET("/tech/:userId", RequireRole(user.RoleTech), h.listForTech)
	routes.GET("/metrics/:userId", RequireRole(user.RoleTech), h.metrics)
	routes.GET("/detail/:id", RequireRole(user.RoleTech), h.detail)
	routes.PATCH("/update/:id", RequireRole(user.RoleLead), h.update)
	routes.DELETE("/delete/:id", RequireRole(user.RoleLead), h.remove)
}

type evaluationForm struct {
	TechID              string `json:"tech_id"`
	PeriodStart         string `json:"period_start"`
	PeriodEnd           string `json:"period_end"`
	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areas_for_improvement"`
	AdditionalComments  string `json:"additional_comments"`
	OverallRating       int    `json:"overall_rating"`
}

func (h *EvaluationHandler) create(c *gin.Context) {
	actor := CurrentUser(c)

	var form evaluationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, end, err := parsePeriod(form.PeriodStart, form.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.evaluations.Create(c.Request.Context(), actor, evaluation.CreateRequest{
		TechID:              form.TechID,
		PeriodStart:         start,
		PeriodEnd:           end,
		Strengths:           form.Strengths,
		AreasForImprovement: form.AreasForImprovement,
		AdditionalComments:  form.AdditionalComments,
		OverallRating:       form.OverallRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *EvaluationHandler) list(c *gin.Context) {
	evaluations, err := h.evaluations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if evaluations == nil {
		evaluations = []evaluation.Evaluation{}
	}
	c.JSON(http.StatusOK, evaluations)
}

func (h *EvaluationHandler) listForTech(c *gin.Context) {
	actor := CurrentUser(c)
	techID := c.Param("userId")

	if !h.canViewTech(actor, techID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you may only view your own evaluations"})
		return
	}

	evaluations, err := h.evaluations.ListForTech(c.Request.Context(), techID)
	if err != nil {
		respondError(c, err)
		return
	}
	if evaluations == nil {
		evaluations = []evaluation.Evaluation{}
	}
	c.JSON(http.StatusOK, evaluations)
}

func (h *EvaluationHandler) metrics(c *gin.Context) {
	actor := CurrentUser(c)
	techID := c.Param("userId")

	if !h.canViewTech(actor, techID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you may only view your own metrics"})
		return
	}

	start, end, err := parsePeriod(c.Query("period_start"), c.Query("period_end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := h.evaluations.Metrics(c.Request.Context(), techID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *EvaluationHandler) detail(c *gin.Context) {
	actor := CurrentUser(c)

	ev, err := h.evaluations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if ev.Tech != actor.Username && !actor.AtLeast(user.RoleLead) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you may only view your own evaluations"})
		return
	}
	c.JSON(http.StatusOK, ev)
}

type evaluationUpdateForm struct {
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
	AdditionalComments  *string `json:"additional_comments"`
	OverallRating       *int    `json:"overall_rating"`
}

func (h *EvaluationHandler) update(c *gin.Context) {
	var form evaluationUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.evaluations.Update(c.Request.Context(), c.Param("id"), evaluation.UpdateRequest{
		Strengths:           form.Strengths,
		AreasForImprovement: form.AreasForImprovement,
		AdditionalComments:  form.AdditionalComments,
		OverallRating:       form.OverallRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EvaluationHandler) remove(c *gin.Context) {
	if err := h.evaluations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EvaluationHandler) canViewTech(actor *user.User, techID string) bool {
	return actor.ID == techID || actor.AtLeast(user.RoleLead)
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr, "period_start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endStr, "period_end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
