package entity

import "github.com/shopspring/decimal"

// SalesSummary es una fila de la vista de solo lectura sales_summary.
type SalesSummary struct {
	Name         string
	Category     string
	SoldQty      int64
	CurrentStock int64
	Revenue      decimal.Decimal
}
