package router

import (
	"aerozone_backend/internal/handlers"
	"aerozone_backend/internal/middleware"
	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sqlx.DB, tokens *utils.TokenManager) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)
	saleRepo := repositories.NewSaleRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db, tokens)
	storeService := services.NewStoreService(storeRepo, db)
	stockService := services.NewStockService(stockRepo, movementRepo, db)
	saleService := services.NewSaleService(saleRepo, stockRepo, movementRepo, db)
	reportService := services.NewReportService(stockRepo, movementRepo, saleRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService)
	stockHandler := handlers.NewStockHandler(stockService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupStoreRoutes(authenticated, storeHandler)
		SetupAdminRoutes(authenticated, storeHandler)

		// Everything below operates on the caller's approved store.
		storeScoped := authenticated.Group("")
		storeScoped.Use(middleware.RoleAuthMiddleware(models.RoleStoreOwner), middleware.StoreScopeMiddleware(storeService))
		{
			SetupStockItemRoutes(storeScoped, stockHandler)
			SetupStockMovementRoutes(storeScoped, stockHandler)
			SetupSaleRoutes(storeScoped, saleHandler)
			SetupReportRoutes(storeScoped, reportHandler)
		}
	}
}

// SetupPublicAuthRoutes registers /register and /login.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}
