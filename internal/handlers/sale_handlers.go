package handlers

import (
	"errors"
	"net/http"

	"aerozone_backend/internal/metrics"
	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultSalePageSize = 10

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// CreateSale records a point-of-sale transaction.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req services.SaleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ObserveSale(metrics.OutcomeValidation, decimal.Zero)
		respondBindError(c, err, "CreateSale")
		return
	}

	result, err := h.saleService.ProcessSale(c.Request.Context(), p, req)
	if err != nil {
		metrics.ObserveSale(saleOutcome(err), decimal.Zero)
		respondServiceError(c, err, "CreateSale")
		return
	}
	metrics.ObserveSale(metrics.OutcomeCommitted, result.TotalAmount.Decimal)
	utils.LogInfo("Sale committed", map[string]interface{}{
		"sale_id":  result.SaleID,
		"store_id": p.StoreID,
		"total":    result.TotalAmount.StringFixed(2),
		"lines":    len(req.Cart),
	})
	c.JSON(http.StatusCreated, result)
}

func saleOutcome(err error) string {
	switch {
	case errors.Is(err, services.ErrInsufficientStock):
		return metrics.OutcomeInsufficientStock
	case errors.Is(err, services.ErrInsufficientFunds):
		return metrics.OutcomeInsufficientFunds
	case errors.Is(err, services.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, services.ErrStockItemNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, services.ErrForbidden):
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomePersistence
	}
}

// GetSales lists the store's sales, newest first.
// Accepts ?start_date= and ?end_date= (YYYY-MM-DD, inclusive), ?page=, ?page_size=.
func (h *SaleHandler) GetSales(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var filters models.SaleFilters
	from, err := services.ParseReportDate("start_date", c.Query("start_date"))
	if err != nil {
		respondServiceError(c, err, "GetSales")
		return
	}
	to, err := services.ParseReportDate("end_date", c.Query("end_date"))
	if err != nil {
		respondServiceError(c, err, "GetSales")
		return
	}
	filters.From = from
	if to != nil {
		until := to.AddDate(0, 0, 1)
		filters.To = &until
	}
	page, pageSize, err := utils.ParsePagination(c, defaultSalePageSize, maxPageSize)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	filters.Page, filters.PageSize = page, pageSize

	sales, total, err := h.saleService.ListSales(c.Request.Context(), p, filters)
	if err != nil {
		respondServiceError(c, err, "GetSales")
		return
	}
	c.JSON(http.StatusOK, listResponse(sales, total, page, pageSize))
}

// GetSaleByID returns one sale with its lines.
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	saleID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid sale ID: "+err.Error())
		return
	}
	sale, err := h.saleService.GetSale(c.Request.Context(), p, saleID)
	if err != nil {
		respondServiceError(c, err, "GetSaleByID")
		return
	}
	c.JSON(http.StatusOK, sale)
}
