// Package report genera los reportes descargables de inventario.
//
// Layout del PDF de saldos (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de corte                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Categoría | Inicial | Compras | ...   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades compradas / vendidas / en existencia      │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// BalancePDF genera el reporte de saldos por SKU y devuelve sus bytes.
func BalancePDF(title string, balances []*entity.SkuBalance, at time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, at, len(balances)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(balanceRows(balances)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(balances))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, at time.Time, skus int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d SKUs", skus), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Corte: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Nombre", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Inicial", 1, align.Right),
		h("Compras", 1, align.Right),
		h("Ventas", 1, align.Right),
		h("Saldo", 2, align.Right),
	)
}

func balanceRows(balances []*entity.SkuBalance) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(balances))
	for _, b := range balances {
		stock := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold}
		if b.CurrentStock < 0 {
			stock.Color = colorNegative
		}
		result = append(result, row.New(6).Add(
			cell(b.SKU, 2, align.Left),
			cell(b.Name, 3, align.Left),
			cell(nonEmpty(b.Category, "-"), 2, align.Left),
			cell(formatThousands(b.InitialStock), 1, align.Right),
			cell(formatThousands(b.PurchasedQty), 1, align.Right),
			cell(formatThousands(b.SoldQty), 1, align.Right),
			col.New(2).Add(text.New(formatThousands(b.CurrentStock), stock)),
		))
	}
	return result
}

func totalsRow(balances []*entity.SkuBalance) core.Row {
	var purchased, sold, current int64
	for _, b := range balances {
		purchased += b.PurchasedQty
		sold += b.SoldQty
		current += b.CurrentStock
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(n int64) core.Component {
		return text.New(formatThousands(n), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(label("Compras:"), label("Ventas:"), label("Existencia:")),
		col.New(3).Add(value(purchased), value(sold), value(current)),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 -> "25.000", -1500 -> "-1.500".
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
