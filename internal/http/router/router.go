package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/config"
	"github.com/ignatzorin/mymove-backend/internal/http/handlers"
	"github.com/ignatzorin/mymove-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	moveRequestHandler *handlers.MoveRequestHandler,
	inventoryHandler *handlers.InventoryHandler,
	quoteHandler *handlers.QuoteHandler,
	bidHandler *handlers.BidHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	// Заявки на переезд.
	api.POST("/move-requests", moveRequestHandler.Create)
	api.GET("/move-requests", moveRequestHandler.List)
	api.GET("/move-requests/:id", middleware.UUIDValidator("id"), moveRequestHandler.Get)
	api.POST("/move-requests/:id/assign", middleware.UUIDValidator("id"), moveRequestHandler.AssignProvider)
	api.POST("/move-requests/:id/expire", middleware.UUIDValidator("id"), moveRequestHandler.Expire)

	// Инвентарная опись.
	api.POST("/move-requests/:id/inventory", middleware.UUIDValidator("id"), inventoryHandler.Create)
	api.GET("/move-requests/:id/inventory", middleware.UUIDValidator("id"), inventoryHandler.Get)
	api.POST("/move-requests/:id/inventory/items", middleware.UUIDValidator("id"), inventoryHandler.AddItem)
	api.PUT("/move-requests/:id/inventory/items", middleware.UUIDValidator("id"), inventoryHandler.ReplaceItems)
	api.PUT("/move-requests/:id/inventory/items/:index", middleware.UUIDValidator("id"), inventoryHandler.UpdateItem)
	api.DELETE("/move-requests/:id/inventory/items/:index", middleware.UUIDValidator("id"), inventoryHandler.RemoveItem)
	api.POST("/move-requests/:id/inventory/confirm", middleware.UUIDValidator("id"), inventoryHandler.Confirm)

	// Оценки стоимости.
	api.POST("/move-requests/:id/quotes/calculate", middleware.UUIDValidator("id"), quoteHandler.CalculateAll)
	api.GET("/move-requests/:id/quotes", middleware.UUIDValidator("id"), quoteHandler.ListByMoveRequest)
	api.POST("/providers/:id/quotes", middleware.UUIDValidator("id"), quoteHandler.CalculateForProvider)

	// Переговоры по офертам.
	api.POST("/bids", bidHandler.Submit)
	api.POST("/bids/:id/accept", middleware.UUIDValidator("id"), bidHandler.Accept)
	api.POST("/bids/:id/reject", middleware.UUIDValidator("id"), bidHandler.Reject)
	api.GET("/move-requests/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListByMoveRequest)
	api.GET("/move-requests/:id/bids/best", middleware.UUIDValidator("id"), bidHandler.Best)
	api.GET("/providers/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListByProvider)

	return r
}
