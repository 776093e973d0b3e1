package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/application/usecase"
)

// CatalogHandler maneja el catálogo de SKUs.
type CatalogHandler struct {
	uc    *usecase.CatalogUseCase
	query *query.Gateway
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, q *query.Gateway) *CatalogHandler {
	return &CatalogHandler{uc: uc, query: q}
}

// Create godoc
// @Summary      Alta de SKU
// @Description  Registra el SKU en el catálogo y crea su saldo con stock inicial = quantity.
// @Tags         skus
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddSkuRequest  true  "sku, category, brand, name, color, size, quantity, unit_price"
// @Success      201  {object}  dto.CatalogEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/skus [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.AddSkuRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddSku(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Baja de SKU
// @Description  Elimina el SKU del catálogo y su saldo. Los movimientos no se tocan.
// @Tags         skus
// @Param        sku  path  string  true  "SKU"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/skus/{sku} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.RemoveSku(c.UserContext(), c.Params("sku")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         skus
// @Produce      json
// @Param        sku       query  string  false  "subcadena de SKU"
// @Param        name      query  string  false  "subcadena de nombre"
// @Param        category  query  string  false  "subcadena de categoría"
// @Param        brand     query  string  false  "subcadena de marca"
// @Success      200  {object}  dto.ListResponse[dto.CatalogEntryResponse]
// @Router       /api/skus [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	list := h.query.ListSkus(c.UserContext(), query.Filter(c.Queries()))
	items := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *usecase.ToCatalogEntryResponse(e))
	}
	return c.JSON(dto.NewList(items))
}
