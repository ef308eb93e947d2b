package handlers

import (
	"net/http"

	"aerozone_backend/internal/metrics"
	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultMovementPageSize = 20
	maxPageSize             = 100
)

// StockHandler holds the stock ledger service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// ListStockItems returns the store's items with their stock status, most urgent first.
// Accepts ?status=out_of_stock|critical|reorder|normal.
func (h *StockHandler) ListStockItems(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.stockService.ListInventory(c.Request.Context(), p, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "ListStockItems")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": len(items)})
}

// ListAvailableItems returns the point-of-sale catalog.
func (h *StockHandler) ListAvailableItems(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.stockService.ListAvailableItems(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err, "ListAvailableItems")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": len(items)})
}

func (h *StockHandler) CreateStockItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req services.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateStockItem")
		return
	}
	item, err := h.stockService.CreateItem(c.Request.Context(), p, req)
	if err != nil {
		respondServiceError(c, err, "CreateStockItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) GetStockItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	itemID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid item ID: "+err.Error())
		return
	}
	item, err := h.stockService.GetItem(c.Request.Context(), p, itemID)
	if err != nil {
		respondServiceError(c, err, "GetStockItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	itemID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid item ID: "+err.Error())
		return
	}
	var req services.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateStockItem")
		return
	}
	item, err := h.stockService.UpdateItem(c.Request.Context(), p, itemID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateStockItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// SetAvailability withdraws an item from sale or puts it back.
func (h *StockHandler) SetAvailability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	itemID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid item ID: "+err.Error())
		return
	}
	var req services.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SetAvailability")
		return
	}
	item, err := h.stockService.SetAvailability(c.Request.Context(), p, itemID, *req.IsAvailable)
	if err != nil {
		respondServiceError(c, err, "SetAvailability")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddStock receives units into stock.
func (h *StockHandler) AddStock(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	itemID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid item ID: "+err.Error())
		return
	}
	var req services.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddStock")
		return
	}
	item, err := h.stockService.AddStock(c.Request.Context(), p, itemID, req.Amount, req.Reason)
	if err != nil {
		respondServiceError(c, err, "AddStock")
		return
	}
	metrics.ObserveStockAdded(req.Amount)
	utils.LogInfo("Stock added", map[string]interface{}{"item_id": item.ID, "amount": req.Amount, "quantity": item.Quantity})
	c.JSON(http.StatusOK, item)
}

// ListMovements returns the stock audit trail, newest first.
// Accepts ?stock_item_id=, ?movement_type=stock_add|sale, ?page=, ?page_size=.
func (h *StockHandler) ListMovements(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var filters models.MovementFilters
	if itemIDStr := c.Query("stock_item_id"); itemIDStr != "" {
		itemID, err := utils.StrToInt64(itemIDStr)
		if err != nil {
			utils.RespondValidationFailed(c, "Invalid stock_item_id format.")
			return
		}
		filters.StockItemID = &itemID
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filters.MovementType = &movementType
	}
	page, pageSize, err := utils.ParsePagination(c, defaultMovementPageSize, maxPageSize)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	filters.Page, filters.PageSize = page, pageSize

	movements, total, err := h.stockService.ListMovements(c.Request.Context(), p, filters)
	if err != nil {
		respondServiceError(c, err, "ListMovements")
		return
	}
	c.JSON(http.StatusOK, listResponse(movements, total, page, pageSize))
}
