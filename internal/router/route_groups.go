package router

import (
	"aerozone_backend/internal/handlers"
	"aerozone_backend/internal/middleware"
	"aerozone_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupStoreRoutes sets up the store owner's registration routes.
func SetupStoreRoutes(authenticatedGroup *gin.RouterGroup, storeHandler *handlers.StoreHandler) {
	storeRoutes := authenticatedGroup.Group("/stores")
	storeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleStoreOwner))
	{
		storeRoutes.POST("", storeHandler.RegisterStore)
		storeRoutes.GET("/mine", storeHandler.GetOwnStore)
	}
}

// SetupAdminRoutes sets up the store review routes.
func SetupAdminRoutes(authenticatedGroup *gin.RouterGroup, storeHandler *handlers.StoreHandler) {
	adminRoutes := authenticatedGroup.Group("/admin")
	adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.GET("/stores", storeHandler.ListStores)
		adminRoutes.PATCH("/stores/:id/approve", storeHandler.ApproveStore)
		adminRoutes.PATCH("/stores/:id/reject", storeHandler.RejectStore)
	}
}

// SetupStockItemRoutes sets up the stock ledger routes.
func SetupStockItemRoutes(storeGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	stockRoutes := storeGroup.Group("/stock-items")
	{
		stockRoutes.GET("", stockHandler.ListStockItems)
		stockRoutes.GET("/available", stockHandler.ListAvailableItems)
		stockRoutes.POST("", stockHandler.CreateStockItem)
		stockRoutes.GET("/:id", stockHandler.GetStockItem)
		stockRoutes.PUT("/:id", stockHandler.UpdateStockItem)
		stockRoutes.PATCH("/:id/availability", stockHandler.SetAvailability)
		stockRoutes.POST("/:id/add-stock", stockHandler.AddStock)
	}
}

// SetupStockMovementRoutes sets up the stock audit trail route.
func SetupStockMovementRoutes(storeGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	storeGroup.GET("/stock-movements", stockHandler.ListMovements)
}

// SetupSaleRoutes sets up the point-of-sale routes.
func SetupSaleRoutes(storeGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := storeGroup.Group("/sales")
	{
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(storeGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := storeGroup.Group("/reports")
	{
		reportRoutes.GET("/inventory", reportHandler.GetInventoryReport)
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
	}
}
