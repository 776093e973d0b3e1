package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
)

// BalanceHandler saldos por SKU y resumen de ventas.
type BalanceHandler struct {
	coord *inventory.Coordinator
	query *query.Gateway
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(coord *inventory.Coordinator, q *query.Gateway) *BalanceHandler {
	return &BalanceHandler{coord: coord, query: q}
}

// List godoc
// @Summary      Listar saldos
// @Tags         balances
// @Produce      json
// @Param        sku       query  string  false  "subcadena de SKU"
// @Param        name      query  string  false  "subcadena de nombre"
// @Param        category  query  string  false  "subcadena de categoría"
// @Param        brand     query  string  false  "subcadena de marca"
// @Success      200  {object}  dto.ListResponse[dto.BalanceResponse]
// @Router       /api/balances [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	list := h.query.ListBalances(c.UserContext(), query.Filter(c.Queries()))
	items := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *inventory.ToBalanceResponse(b))
	}
	return c.JSON(dto.NewList(items))
}

// Get godoc
// @Summary      Saldo de un SKU
// @Tags         balances
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/{sku} [get]
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	b, err := h.coord.Balance(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToBalanceResponse(b))
}

// Repair godoc
// @Summary      Reparar saldo
// @Description  Recalcula compras, ventas y saldo del SKU desde los movimientos del libro.
// @Tags         balances
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/{sku}/repair [post]
func (h *BalanceHandler) Repair(c *fiber.Ctx) error {
	b, err := h.coord.RepairBalance(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToBalanceResponse(b))
}

// Delete godoc
// @Summary      Eliminar fila de saldo
// @Description  Borra el saldo del SKU. Los movimientos del libro y el catálogo no se tocan.
// @Tags         balances
// @Param        sku  path  string  true  "SKU"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/{sku} [delete]
func (h *BalanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.coord.DeleteBalance(c.UserContext(), c.Params("sku")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SalesSummary godoc
// @Summary      Resumen de ventas
// @Tags         balances
// @Produce      json
// @Param        name      query  string  false  "subcadena de nombre"
// @Param        category  query  string  false  "subcadena de categoría"
// @Success      200  {object}  dto.ListResponse[dto.SalesSummaryResponse]
// @Router       /api/sales-summary [get]
func (h *BalanceHandler) SalesSummary(c *fiber.Ctx) error {
	list := h.query.ListSalesSummary(c.UserContext(), query.Filter(c.Queries()))
	items := make([]dto.SalesSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SalesSummaryResponse{
			Name:         s.Name,
			Category:     s.Category,
			SoldQty:      s.SoldQty,
			CurrentStock: s.CurrentStock,
			Revenue:      s.Revenue.StringFixed(2),
		})
	}
	return c.JSON(dto.NewList(items))
}
