package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// MovementHandler maneja las entradas y salidas de stock.
type MovementHandler struct {
	coord *inventory.Coordinator
	query *query.Gateway
}

// NewMovementHandler construye el handler.
func NewMovementHandler(coord *inventory.Coordinator, q *query.Gateway) *MovementHandler {
	return &MovementHandler{coord: coord, query: q}
}

// Record godoc
// @Summary      Registrar entrada o salida de stock
// @Description  Escribe el movimiento en el libro y ajusta el saldo del SKU. Si el saldo no pudo
//
//	actualizarse responde 202 con movement_id: el movimiento existe y el saldo se corrige con repair.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        direction  path  string                     true  "in | out"
// @Param        body       body  dto.RecordMovementRequest  true  "sku, quantity (> 0), date (YYYY-MM-DD), name, note, color, size"
// @Success      201  {object}  dto.MovementResponse
// @Success      202  {object}  dto.ErrorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/{direction} [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.coord.RecordMovementFromRequest(c.UserContext(), c.Params("direction"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Borra el movimiento y revierte su efecto sobre el saldo.
// @Tags         movements
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Success      202  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.coord.DeleteMovement(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Movimientos de una dirección en orden de inserción. Nunca falla: ante error devuelve lista vacía.
// @Tags         movements
// @Produce      json
// @Param        direction  path   string  true   "in | out"
// @Param        sku        query  string  false  "subcadena de SKU"
// @Param        name       query  string  false  "subcadena de nombre"
// @Param        color      query  string  false  "subcadena de color"
// @Param        size       query  string  false  "subcadena de talla"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/{direction} [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	dir := entity.Direction(strings.ToUpper(c.Params("direction")))
	if !dir.Valid() {
		return writeError(c, domain.Validation("dirección inválida: use in u out"))
	}
	list := h.query.ListMovements(c.UserContext(), dir, query.Filter(c.Queries()))
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.NewList(items))
}
