package handler

import (
	"net/http"

	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
	logs    *service.LogService
}

func NewReportHandler(reports *service.ReportService, logs *service.LogService) *ReportHandler {
	return &ReportHandler{reports: reports, logs: logs}
}

// SalesSummary godoc
// @Summary Sales summary for a date range
// @Tags reports
// @Produce json
// @Param start_date query string false "YYYY-MM-DD, defaults to today"
// @Param end_date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} dto.SalesSummaryResponse
// @Security BearerAuth
// @Router /v1/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	start, end, _, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.reports.SalesSummary(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportTransactions streams the sales history as an xlsx download.
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	start, end, _, ok := dateRange(c)
	if !ok {
		return
	}
	buf, err := h.reports.ExportTransactionsXLSX(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+service.ExportFileName(start, end))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// Logs lists the activity log for a date range.
func (h *ReportHandler) Logs(c *gin.Context) {
	start, end, search, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.logs.List(c.Request.Context(), start, end, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
