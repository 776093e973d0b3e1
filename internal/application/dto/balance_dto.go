package dto

import "time"

// BalanceResponse salida del saldo de un SKU.
type BalanceResponse struct {
	SKU          string    `json:"sku"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	Size         string    `json:"size"`
	InitialStock int64     `json:"initial_stock"`
	PurchasedQty int64     `json:"purchased_qty"`
	SoldQty      int64     `json:"sold_qty"`
	CurrentStock int64     `json:"current_stock"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SalesSummaryResponse fila del resumen de ventas.
type SalesSummaryResponse struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	SoldQty      int64  `json:"sold_qty"`
	CurrentStock int64  `json:"current_stock"`
	Revenue      string `json:"revenue"`
}
