package handler

import (
	"github.com/Mavunaku/cvp3sea/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, projectHandler *ProjectHandler, ledgerHandler *LedgerHandler, receiptHandler *ReceiptHandler, assetHandler *AssetHandler, taxHandler *TaxHandler, wsHandler *WebSocketHandler) {
	// WebSocket authenticates with ?token= during the handshake
	e.GET("/ws", wsHandler.HandleWS)

	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Fiscal year routes
	years := api.Group("/years")
	years.GET("", projectHandler.GetYears)
	years.POST("", projectHandler.CreateYear)
	years.DELETE("/:year", projectHandler.DeleteYear)

	// Project routes
	projects := api.Group("/projects")
	projects.GET("", projectHandler.GetProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Ledger routes
	ledger := api.Group("/ledger")
	ledger.GET("", ledgerHandler.GetEntries)
	ledger.POST("", ledgerHandler.CreateEntry)
	ledger.PATCH("/ny-source", ledgerHandler.SetNYSource)
	ledger.GET("/:id", ledgerHandler.GetEntry)
	ledger.PUT("/:id", ledgerHandler.UpdateEntry)
	ledger.DELETE("/:id", ledgerHandler.DeleteEntry)
	ledger.POST("/:id/receipt", receiptHandler.UploadReceipt)
	ledger.GET("/:id/receipt", receiptHandler.GetReceipt)
	ledger.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Asset routes
	assets := api.Group("/assets")
	assets.GET("", assetHandler.GetAssets)
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Tax computation routes
	taxes := api.Group("/tax")
	taxes.GET("/summary", taxHandler.GetSummary)
	taxes.GET("/entries", taxHandler.GetDeductions)
	taxes.GET("/depreciation", taxHandler.GetDepreciation)
	taxes.GET("/schedule-c", taxHandler.GetScheduleC)
	taxes.GET("/accountant-report", taxHandler.GetAccountantReport)
	taxes.GET("/rankings", taxHandler.GetRankings)
	taxes.GET("/monthly", taxHandler.GetMonthly)
	taxes.GET("/top-categories", taxHandler.GetTopCategories)
}
