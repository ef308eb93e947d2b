package handlers

import (
	"net/http"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// parseReportRequestParams helps parse common query parameters for reports.
func parseReportRequestParams(c *gin.Context) models.ReportRequestParams {
	var params models.ReportRequestParams
	params.StartDate = c.Query("start_date")
	params.EndDate = c.Query("end_date")
	params.Status = c.Query("status")
	return params
}

// GetInventoryReport returns every item with its tier, tier counts and stock value.
func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params := parseReportRequestParams(c)
	report, err := h.reportService.GetInventoryReport(c.Request.Context(), p, params.Status)
	if err != nil {
		respondServiceError(c, err, "GetInventoryReport")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSalesReport returns per-day sales totals for ?start_date=&end_date=.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params := parseReportRequestParams(c)
	report, err := h.reportService.GetSalesReport(c.Request.Context(), p, params.StartDate, params.EndDate)
	if err != nil {
		respondServiceError(c, err, "GetSalesReport")
		return
	}
	c.JSON(http.StatusOK, report)
}
