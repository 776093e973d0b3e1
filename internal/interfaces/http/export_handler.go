package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/report"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportHandler descargas de saldos y resumen de ventas. Aceptan los mismos filtros que los listados.
type ExportHandler struct {
	query *query.Gateway
	now   func() time.Time
}

// NewExportHandler construye el handler.
func NewExportHandler(q *query.Gateway) *ExportHandler {
	return &ExportHandler{query: q, now: time.Now}
}

// BalancesXLSX godoc
// @Summary      Exportar saldos a Excel
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/export.xlsx [get]
func (h *ExportHandler) BalancesXLSX(c *fiber.Ctx) error {
	data, err := report.BalancesXLSX(h.query.ListBalances(c.UserContext(), query.Filter(c.Queries())))
	if err != nil {
		return exportFailed(c, err)
	}
	return h.attachment(c, "saldos", "xlsx", mimeXLSX, data)
}

// BalancesPDF godoc
// @Summary      Exportar saldos a PDF
// @Tags         exports
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/balances/export.pdf [get]
func (h *ExportHandler) BalancesPDF(c *fiber.Ctx) error {
	list := h.query.ListBalances(c.UserContext(), query.Filter(c.Queries()))
	data, err := report.BalancePDF("Saldos de inventario", list, h.now())
	if err != nil {
		return exportFailed(c, err)
	}
	return h.attachment(c, "saldos", "pdf", mimePDF, data)
}

// SalesSummaryXLSX godoc
// @Summary      Exportar resumen de ventas a Excel
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales-summary/export.xlsx [get]
func (h *ExportHandler) SalesSummaryXLSX(c *fiber.Ctx) error {
	data, err := report.SalesSummaryXLSX(h.query.ListSalesSummary(c.UserContext(), query.Filter(c.Queries())))
	if err != nil {
		return exportFailed(c, err)
	}
	return h.attachment(c, "ventas", "xlsx", mimeXLSX, data)
}

func (h *ExportHandler) attachment(c *fiber.Ctx, base, ext, mime string, data []byte) error {
	name := fmt.Sprintf("%s_%s.%s", base, h.now().Format("20060102_150405"), ext)
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

func exportFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
}
