package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// BalancesXLSX exporta los saldos a una hoja "Saldos".
func BalancesXLSX(balances []*entity.SkuBalance) ([]byte, error) {
	header := []interface{}{"SKU", "Categoría", "Marca", "Nombre", "Color", "Talla",
		"Stock inicial", "Compras", "Ventas", "Saldo"}
	rows := make([][]interface{}, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, []interface{}{
			b.SKU, b.Category, b.Brand, b.Name, b.Color, b.Size,
			b.InitialStock, b.PurchasedQty, b.SoldQty, b.CurrentStock,
		})
	}
	return writeSheet("Saldos", header, rows)
}

// SalesSummaryXLSX exporta el resumen de ventas a una hoja "Ventas".
// Ingresos se escribe como texto con dos decimales para no pasar el decimal por float64.
func SalesSummaryXLSX(summary []*entity.SalesSummary) ([]byte, error) {
	header := []interface{}{"Nombre", "Categoría", "Vendidos", "Saldo", "Ingresos"}
	rows := make([][]interface{}, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []interface{}{
			s.Name, s.Category, s.SoldQty, s.CurrentStock, s.Revenue.StringFixed(2),
		})
	}
	return writeSheet("Ventas", header, rows)
}

func writeSheet(name string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, name); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		r := r
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
