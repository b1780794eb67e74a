package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
)

// ReportHandler serves the aggregate reporting endpoints.
type ReportHandler struct {
	reports *report.Service
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *report.Service, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Register mounts the routes on the authenticated router group.
func (h *ReportHandler) Register(r *gin.RouterGroup) {
	routes := r.Group("/reports", RequireRole(user.RoleLead))
	routes.GET("/summary/", h.summary)
	routes.GET("/user/:userId", h.userStats)
	routes.GET("/leaderboard/", h.leaderboard)
	routes.GET("/ping-stats/", h.pingStats)
	routes.GET("/date-range/", h.dateRange)
}

func (h *ReportHandler) summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) userStats(c *gin.Context) {
	stats, err := h.reports.UserStats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) leaderboard(c *gin.Context) {
	days, err := intQuery(c, "days", 7)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := intQuery(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.reports.Leaderboard(c.Request.Context(), days, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *ReportHandler) pingStats(c *gin.Context) {
	stats, err := h.reports.PingStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) dateRange(c *gin.Context) {
	start, err := parseDate(c.Query("start_date"), "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDate(c.Query("end_date"), "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.reports.DateRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseDate accepts YYYY-MM-DD query and body fields.
func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is a required field", field)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as YYYY-MM-DD", field)
	}
	return t, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}
