package handlers

import (
	"net/http"

	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StoreHandler holds the store service.
type StoreHandler struct {
	storeService services.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(ss services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: ss}
}

// RegisterStore submits the caller's store for admin review.
func (h *StoreHandler) RegisterStore(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req services.RegisterStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RegisterStore")
		return
	}
	store, err := h.storeService.RegisterStore(c.Request.Context(), p, req)
	if err != nil {
		respondServiceError(c, err, "RegisterStore")
		return
	}
	utils.LogInfo("Store registered", map[string]interface{}{"store_id": store.ID, "owner_id": p.UserID})
	c.JSON(http.StatusCreated, store)
}

// GetOwnStore returns the caller's store whatever its review status.
func (h *StoreHandler) GetOwnStore(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	store, err := h.storeService.GetOwnStore(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err, "GetOwnStore")
		return
	}
	c.JSON(http.StatusOK, store)
}

// ListStores lists stores for admins, optionally filtered by ?status=.
func (h *StoreHandler) ListStores(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	stores, err := h.storeService.ListStores(c.Request.Context(), p, c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "ListStores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stores, "total": len(stores)})
}

// ApproveStore approves a pending store.
func (h *StoreHandler) ApproveStore(c *gin.Context) {
	h.review(c, true)
}

// RejectStore rejects a pending store.
func (h *StoreHandler) RejectStore(c *gin.Context) {
	h.review(c, false)
}

func (h *StoreHandler) review(c *gin.Context, approve bool) {
	p, ok := principal(c)
	if !ok {
		return
	}
	storeID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid store ID: "+err.Error())
		return
	}
	store, err := h.storeService.ReviewStore(c.Request.Context(), p, storeID, approve)
	if err != nil {
		respondServiceError(c, err, "ReviewStore")
		return
	}
	utils.LogInfo("Store reviewed", map[string]interface{}{"store_id": store.ID, "status": store.Status, "reviewer_id": p.UserID})
	c.JSON(http.StatusOK, store)
}
