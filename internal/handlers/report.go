package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// LastWeek returns completed task counts per day for the trailing week
func (h *ReportHandler) LastWeek(c *gin.Context) {
	rows, err := h.reportService.LastWeek(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Pending returns name and time to complete of unfinished tasks
func (h *ReportHandler) Pending(c *gin.Context) {
	rows, err := h.reportService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ClosedTasks returns completed task counts by owner, team and project
func (h *ReportHandler) ClosedTasks(c *gin.Context) {
	report, err := h.reportService.ClosedTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
