package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Aggregator *inventory.StockAggregator
	Checker    *inventory.AvailabilityChecker
	Reporter   *inventory.WarehouseReporter
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Aggregator, deps.Checker, deps.Reporter)
	stock.Get("/products/:id", stockHandler.GetStock)
	stock.Get("/products/:id/summary", stockHandler.GetSummary)
	stock.Get("/products/:id/has-stock", stockHandler.HasStock)
	stock.Post("/availability", stockHandler.CheckAvailability)
	stock.Post("/availability/batch", stockHandler.CheckBatch)
}
