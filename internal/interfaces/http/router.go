package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Coordinator *inventory.Coordinator
	CatalogUC   *usecase.CatalogUseCase
	Query       *query.Gateway
	Metrics     nethttp.Handler // nil: sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Movimientos (libro + ajuste de saldo)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Coordinator, deps.Query)
	movements.Post("/:direction", movementHandler.Record)
	movements.Get("/:direction", movementHandler.List)
	movements.Delete("/:id", movementHandler.Delete)

	// Exportaciones antes de /:sku para que no las capture el parámetro
	exportHandler := NewExportHandler(deps.Query)
	api.Get("/balances/export.xlsx", exportHandler.BalancesXLSX)
	api.Get("/balances/export.pdf", exportHandler.BalancesPDF)
	api.Get("/sales-summary/export.xlsx", exportHandler.SalesSummaryXLSX)

	// Saldos
	balances := api.Group("/balances")
	balanceHandler := NewBalanceHandler(deps.Coordinator, deps.Query)
	balances.Get("/", balanceHandler.List)
	balances.Get("/:sku", balanceHandler.Get)
	balances.Delete("/:sku", balanceHandler.Delete)
	balances.Post("/:sku/repair", balanceHandler.Repair)
	api.Get("/sales-summary", balanceHandler.SalesSummary)

	// Catálogo
	skus := api.Group("/skus")
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.Query)
	skus.Post("/", catalogHandler.Create)
	skus.Get("/", catalogHandler.List)
	skus.Delete("/:sku", catalogHandler.Delete)
}
